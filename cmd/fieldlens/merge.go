package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldlens/fieldlens"
)

func newMergeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "merge <schema.json>...",
		Short: "Coalesce saved schema interchange files into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas := make([]*fieldlens.Schema, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				s, err := fieldlens.DecodeSchema(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				schemas = append(schemas, s)
			}
			merged, issues := fieldlens.CoalesceAll(schemas...)
			for _, i := range issues {
				log.WithFields(map[string]any{"code": i.Code, "path": i.Path}).Warn(i.Message)
			}
			wire, err := fieldlens.EncodeSchema(merged)
			if err != nil {
				return err
			}
			if out != "" {
				return os.WriteFile(out, wire, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(append(wire, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the merged schema to a file instead of stdout")
	return cmd
}
