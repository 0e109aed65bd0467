package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mbse-export/internal/pipeline"
	"github.com/pdiddy/mbse-export/internal/report"
	"github.com/pdiddy/mbse-export/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check <export.xml>",
	Short: "Validate an export without writing reports",
	Long: `Check runs the read-only stages of report: it parses the export,
resolves the relationship schema and extracts the graph, then prints the
declared relationship types, entity counts and duplicate numbers. It exits
non-zero on the same errors report would.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := pipeline.Load(cmd.Context(), cfg, args[0], logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tKIND")
		for _, id := range loaded.Registry.IDs() {
			name, _ := loaded.Registry.Name(id)
			fmt.Fprintf(tw, "%s\t%s\t%s\n", id, name, loaded.Registry.Kind(id))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		s := loaded.Summary
		fmt.Fprintf(out, "\nrequirements: %d, actions: %d, assets: %d, skipped: %d, relationships: %d, labels: %d\n",
			s.Requirements, s.Actions, s.Assets, s.Skipped, s.Relationships, s.Labels)

		for _, c := range types.Classes {
			for _, d := range report.Duplicates(loaded.Graph.OfClass(c)) {
				fmt.Fprintf(out, "duplicate %s number %s (%d occurrences)\n", c, d.Number, d.Count)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
