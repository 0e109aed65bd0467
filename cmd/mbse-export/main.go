// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mbse-export CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/mbse-export/internal/config"
	"github.com/pdiddy/mbse-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the effective configuration, loaded before any subcommand runs.
	cfg types.ExportConfig
	// logger is built from cfg.Log.
	logger = zap.NewNop()
)

// flagKeys maps command-line flags to the config keys they override. A
// flag only overrides when the user sets it.
var flagKeys = map[string]string{
	"verbose":            "log.verbose",
	"log-format":         "log.format",
	"output-dir":         "report.output_dir",
	"reports":            "report.reports",
	"sep":                "report.sep_directive",
	"description-format": "report.description_format",
	"same-class-refs":    "report.same_class_references",
}

// rootCmd is the base command for the mbse-export CLI.
var rootCmd = &cobra.Command{
	Use:   "mbse-export",
	Short: "Export requirements, actions and assets from an MBSE model to CSV",
	Long: `mbse-export reads the XML export of a model-based systems engineering
project and writes spreadsheet-ready reports: one table per entity class,
a requirement to action traceability matrix, and a list of entity numbers
that occur more than once.

The relationship types of the export are checked against the configured
identifiers before anything is written. A mismatch stops the run.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Arguments are valid by now; later failures are not usage errors.
		cmd.SilenceUsage = true

		cfgFile, _ := cmd.Flags().GetString("config")
		v := config.NewViper(cfgFile)
		if err := bindFlags(v, cmd.Flags()); err != nil {
			return err
		}

		loaded, used, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := config.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		if used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// bindFlags binds every flag of flagKeys that the command defines.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mbse-export.yaml or ~/.config/mbse-export/mbse-export.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
