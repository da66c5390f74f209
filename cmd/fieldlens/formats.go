package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldlens/fieldlens"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List registered input formats and render targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "formats:")
			for _, f := range fieldlens.Formats() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "targets:")
			for _, t := range fieldlens.Targets() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", t)
			}
			return nil
		},
	}
}
