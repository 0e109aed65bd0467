// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mbse-export/pkg/types"
)

// GraphExport is the serializable form of an extracted graph.
type GraphExport struct {
	Requirements  []*types.Requirement `json:"requirements" yaml:"requirements"`
	Actions       []*types.Action      `json:"actions" yaml:"actions"`
	Assets        []*types.Asset       `json:"assets" yaml:"assets"`
	Relationships []types.Relationship `json:"relationships" yaml:"relationships"`
	Labels        []types.Label        `json:"labels" yaml:"labels"`
}

// NewGraphExport flattens g. Labels are sorted by id; everything else keeps
// document order.
func NewGraphExport(g *types.Graph) GraphExport {
	labels := make([]types.Label, 0, len(g.Labels))
	for _, l := range g.Labels {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })

	return GraphExport{
		Requirements:  g.Requirements,
		Actions:       g.Actions,
		Assets:        g.Assets,
		Relationships: g.Relationships.All(),
		Labels:        labels,
	}
}

// ExportYAML writes g to w as YAML.
func ExportYAML(w io.Writer, g *types.Graph) error {
	data, err := yaml.Marshal(NewGraphExport(g))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes g to w as indented JSON.
func ExportJSON(w io.Writer, g *types.Graph) error {
	data, err := json.MarshalIndent(NewGraphExport(g), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
