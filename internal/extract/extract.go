// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract builds the entity/relationship graph from a parsed export.
// Entities are classified by schema-class id into requirements, actions and
// assets; relationships are indexed by source; labels are resolved to names.
package extract

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/mbse-export/internal/document"
	"github.com/pdiddy/mbse-export/internal/schema"
	"github.com/pdiddy/mbse-export/pkg/types"
)

// ErrContractViolation reports an export whose structure contradicts what
// the extractor relies on, e.g. a requirement-only attribute on an action.
var ErrContractViolation = errors.New("export contract violation")

// Summary holds counts from one extraction.
type Summary struct {
	Requirements  int
	Actions       int
	Assets        int
	Skipped       int
	Relationships int
	Labels        int
}

// Total returns the number of entity nodes seen, skipped ones included.
func (s Summary) Total() int {
	return s.Requirements + s.Actions + s.Assets + s.Skipped
}

// Extract runs the entity, relationship and label extractors over doc. The
// registry must come from schema.Resolve on the same document.
func Extract(doc *document.Document, reg *schema.Registry, cfg types.SchemaConfig, logger *zap.Logger) (*types.Graph, Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g, skipped, err := Entities(doc, cfg, logger)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("extracting entities: %w", err)
	}

	rels, err := Relationships(doc, reg)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("extracting relationships: %w", err)
	}
	g.Relationships = rels

	labels, err := Labels(doc)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("extracting labels: %w", err)
	}
	g.Labels = labels

	summary := Summary{
		Requirements:  len(g.Requirements),
		Actions:       len(g.Actions),
		Assets:        len(g.Assets),
		Skipped:       skipped,
		Relationships: rels.Len(),
		Labels:        len(labels),
	}
	logger.Debug("extraction complete",
		zap.Int("requirements", summary.Requirements),
		zap.Int("actions", summary.Actions),
		zap.Int("assets", summary.Assets),
		zap.Int("skipped", summary.Skipped),
		zap.Int("relationships", summary.Relationships),
		zap.Int("labels", summary.Labels),
	)
	return g, summary, nil
}
