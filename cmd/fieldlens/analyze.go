package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/fieldlens/fieldlens"
)

type analyzeFlags struct {
	format     string
	target     string
	rootName   string
	out        string
	sampleCap  int
	maxDepth   int
	maxBytes   int64
	workers    int
	xmlCleanup bool
	saveSchema string
}

func newAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze [file...]",
		Short: "Infer a schema from data files and render it",
		Long: `Analyze infers one schema across all given files. Files are processed
concurrently and their partial schemas coalesced, so input order does not
change the result. With no files, input is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "input format (json, yaml, toml, cbor, xml); default: by file extension")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "raw", "render target")
	cmd.Flags().StringVar(&flags.rootName, "root-name", "", "name of the root entity in rendered output")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write rendered output to a file instead of stdout")
	cmd.Flags().IntVar(&flags.sampleCap, "sample-cap", 0, "distinct samples kept per leaf (0 = default)")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "abort documents nested deeper than this (0 = unlimited)")
	cmd.Flags().Int64Var(&flags.maxBytes, "max-bytes", 0, "abort documents larger than this (0 = unlimited)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 4, "concurrent inference workers")
	cmd.Flags().BoolVar(&flags.xmlCleanup, "xml-cleanup", true, "rewrite XML structural artifacts after inference")
	cmd.Flags().StringVar(&flags.saveSchema, "save-schema", "", "also write the schema interchange form to a file")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, flags analyzeFlags) error {
	opt := fieldlens.Options{
		SampleCap: flags.sampleCap,
		MaxDepth:  flags.maxDepth,
		MaxBytes:  flags.maxBytes,
		IssueSink: func(i fieldlens.Issue) {
			log.WithFields(map[string]any{"code": i.Code, "path": i.Path}).Warn(i.Message)
		},
	}

	var schemas []*fieldlens.Schema
	sawXML := false
	if len(args) == 0 {
		format := fieldlens.Format(flags.format)
		if format == "" {
			format = fieldlens.FormatJSON
		}
		sawXML = format == fieldlens.FormatXML
		s := fieldlens.NewSchema()
		if err := fieldlens.InferWith(s, fieldlens.NewSource(format, cmd.InOrStdin()), opt); err != nil {
			return err
		}
		schemas = append(schemas, s)
	} else {
		var err error
		schemas, sawXML, err = analyzeFiles(args, flags, opt)
		if err != nil {
			return err
		}
	}

	merged, issues := fieldlens.CoalesceAll(schemas...)
	for _, i := range issues {
		opt.IssueSink(i)
	}
	if sawXML && flags.xmlCleanup {
		fieldlens.CleanupXML(merged)
	}

	r, ok := fieldlens.TargetFor(flags.target)
	if !ok {
		return fmt.Errorf("unknown render target %q (have: %s)", flags.target, strings.Join(fieldlens.Targets(), ", "))
	}
	out, err := r.Render(merged, fieldlens.RenderConfig{RootName: flags.rootName})
	if err != nil {
		return err
	}

	if flags.saveSchema != "" {
		wire, err := fieldlens.EncodeSchema(merged)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.saveSchema, wire, 0o644); err != nil {
			return err
		}
	}
	if flags.out != "" {
		return os.WriteFile(flags.out, out, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// analyzeFiles fans inference out over a bounded worker pool; each file
// builds its own schema so the merge stays order-independent.
func analyzeFiles(paths []string, flags analyzeFlags, opt fieldlens.Options) ([]*fieldlens.Schema, bool, error) {
	workers := flags.workers
	if workers < 1 {
		workers = 1
	}

	schemas := make([]*fieldlens.Schema, len(paths))
	errs := make([]error, len(paths))
	sawXML := false

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, path := range paths {
		format, err := resolveFormat(flags.format, path)
		if err != nil {
			return nil, false, err
		}
		if format == fieldlens.FormatXML {
			sawXML = true
		}
		wg.Add(1)
		go func(i int, path string, format fieldlens.Format) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			schemas[i], errs[i] = analyzeFile(path, format, opt)
		}(i, path, format)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", paths[i], err)
		}
	}
	return schemas, sawXML, nil
}

func analyzeFile(path string, format fieldlens.Format, opt fieldlens.Options) (*fieldlens.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log.WithFields(map[string]any{"file": path, "format": format}).Debug("analyzing")
	s := fieldlens.NewSchema()
	if err := fieldlens.InferWith(s, fieldlens.NewSource(format, f), opt); err != nil {
		return nil, err
	}
	return s, nil
}

var extFormats = map[string]fieldlens.Format{
	".json":  fieldlens.FormatJSON,
	".jsonl": fieldlens.FormatJSON,
	".yaml":  fieldlens.FormatYAML,
	".yml":   fieldlens.FormatYAML,
	".toml":  fieldlens.FormatTOML,
	".cbor":  fieldlens.FormatCBOR,
	".xml":   fieldlens.FormatXML,
}

func resolveFormat(explicit, path string) (fieldlens.Format, error) {
	if explicit != "" {
		f := fieldlens.Format(explicit)
		if _, ok := fieldlens.DriverFor(f); !ok {
			return "", fmt.Errorf("unknown format %q", explicit)
		}
		return f, nil
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("cannot infer format of %s; use --format", path)
}
