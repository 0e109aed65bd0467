package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mbse-export/internal/extract"
	"github.com/pdiddy/mbse-export/internal/pipeline"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <export.xml>",
	Short: "Print the extracted graph as YAML or JSON",
	Long: `Dump extracts requirements, actions, assets, relationships and labels
from the export and prints them with descriptions left as stored in the
export. Useful for diffing two exports or feeding other tools.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "yaml" && format != "json" {
			return fmt.Errorf("unknown format %q (want yaml or json)", format)
		}

		loaded, err := pipeline.Load(cmd.Context(), cfg, args[0], logger)
		if err != nil {
			return err
		}
		if format == "json" {
			return extract.ExportJSON(cmd.OutOrStdout(), loaded.Graph)
		}
		return extract.ExportYAML(cmd.OutOrStdout(), loaded.Graph)
	},
}

func init() {
	dumpCmd.Flags().StringP("format", "f", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(dumpCmd)
}
