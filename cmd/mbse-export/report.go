package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/mbse-export/internal/pipeline"
)

var reportCmd = &cobra.Command{
	Use:   "report <export.xml>",
	Short: "Write the CSV reports for an export",
	Long: `Report parses the export, resolves its relationship schema, extracts
requirements, actions and assets, and writes the enabled tables into the
output directory. Existing files are replaced. A duplicate report is only
written when the class has repeated numbers.

Nothing is written when the schema does not match or a label cannot be
resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pipeline.Run(cmd.Context(), cfg, args[0], cmd.OutOrStdout(), logger)
		return err
	},
}

func init() {
	reportCmd.Flags().StringP("output-dir", "o", ".", "directory the reports are written to")
	reportCmd.Flags().StringSlice("reports", nil, "reports to write: requirements, actions, assets, matrix, duplicates (default all)")
	reportCmd.Flags().Bool("sep", true, `write a "sep=," first row for spreadsheet applications`)
	reportCmd.Flags().String("description-format", "text", "description rendering: text or markdown")
	reportCmd.Flags().Bool("same-class-refs", false, "list cross-references to entities of the row's own class")

	rootCmd.AddCommand(reportCmd)
}
