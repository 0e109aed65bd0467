// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/mbse-export/pkg/types"
)

// NewLogger builds the diagnostic logger. Logs go to stderr so that report
// progress on stdout stays machine readable.
func NewLogger(cfg types.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	case "console", "":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
