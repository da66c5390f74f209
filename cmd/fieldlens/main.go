// Command fieldlens infers annotated schemas from JSON, YAML, TOML, CBOR and
// XML data and renders them as reports, JSON Schema documents or type
// declarations.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// Render targets register themselves.
	_ "github.com/fieldlens/fieldlens/target/gotypes"
	_ "github.com/fieldlens/fieldlens/target/jsonschema"
	_ "github.com/fieldlens/fieldlens/target/pytypes"
	_ "github.com/fieldlens/fieldlens/target/raw"
)

var log = logrus.New()

func main() {
	root := &cobra.Command{
		Use:           "fieldlens",
		Short:         "Infer annotated schemas from self-describing data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	}

	root.AddCommand(newAnalyzeCmd(), newMergeCmd(), newFormatsCmd())

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
