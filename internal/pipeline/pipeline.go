// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the export stages in order: load the document,
// resolve its relationship schema, extract the graph, build every report
// table and write them. Any fatal error stops the run before the first
// file is written.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/mbse-export/internal/document"
	"github.com/pdiddy/mbse-export/internal/extract"
	"github.com/pdiddy/mbse-export/internal/markup"
	"github.com/pdiddy/mbse-export/internal/report"
	"github.com/pdiddy/mbse-export/internal/schema"
	"github.com/pdiddy/mbse-export/internal/tabular"
	"github.com/pdiddy/mbse-export/pkg/types"
)

// Summary holds the outcome of one run.
type Summary struct {
	extract.Summary

	// RelationTypes is the number of relationship types the export declares.
	RelationTypes int
	// Duplicates is the number of duplicated numbers across all classes.
	Duplicates int
	// Files lists the paths written, in write order.
	Files []string
}

// Loaded is the result of the read-only stages.
type Loaded struct {
	Graph    *types.Graph
	Registry *schema.Registry
	Summary  extract.Summary
}

// Load parses the export at path, resolves its schema and extracts the graph.
func Load(ctx context.Context, cfg types.ExportConfig, path string, logger *zap.Logger) (*Loaded, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reg, err := schema.Resolve(doc, cfg.Schema.Relations)
	if err != nil {
		return nil, fmt.Errorf("resolving schema of %s: %w", path, err)
	}
	logger.Debug("schema resolved", zap.Int("relation_types", reg.Len()))

	g, summary, err := extract.Extract(doc, reg, cfg.Schema, logger)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Loaded{Graph: g, Registry: reg, Summary: summary}, nil
}

// Build produces every enabled report table for a loaded graph.
func Build(cfg types.ReportConfig, g *types.Graph) ([]report.Table, error) {
	render, err := markup.New(cfg.DescriptionFormat)
	if err != nil {
		return nil, err
	}
	return report.NewBuilder(g, render, cfg).Build()
}

// Run executes the whole pipeline for the export at path, writing progress
// lines to w.
func Run(ctx context.Context, cfg types.ExportConfig, path string, w io.Writer, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loaded, err := Load(ctx, cfg, path, logger)
	if err != nil {
		return Summary{}, err
	}

	tables, err := Build(cfg.Report, loaded.Graph)
	if err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Summary:       loaded.Summary,
		RelationTypes: loaded.Registry.Len(),
	}
	for _, t := range tables {
		if t.Optional && !t.Empty() {
			summary.Duplicates += len(t.Rows)
			logger.Warn("duplicate entity numbers",
				zap.String("report", t.File),
				zap.Int("numbers", len(t.Rows)),
			)
		}
	}

	writer := &tabular.Writer{Dir: cfg.Report.OutputDir, SepDirective: cfg.Report.SepDirective}
	for _, t := range tables {
		res, err := writer.Write(t)
		if err != nil {
			return summary, err
		}
		switch {
		case res.Removed:
			fmt.Fprintf(w, "removed %s (no anomalies)\n", res.Path)
		case res.Skipped:
			logger.Debug("no anomalies", zap.String("report", t.File))
		default:
			fmt.Fprintf(w, "wrote   %s (%d rows)\n", res.Path, res.Rows)
			summary.Files = append(summary.Files, res.Path)
		}
	}

	fmt.Fprintf(w, "\nrequirements: %d, actions: %d, assets: %d, skipped: %d, relationships: %d, labels: %d, duplicates: %d\n",
		summary.Requirements, summary.Actions, summary.Assets, summary.Skipped,
		summary.Relationships, summary.Labels, summary.Duplicates)

	return summary, nil
}
