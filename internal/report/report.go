// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns an extracted graph into tables: one per entity class,
// a requirements-to-actions traceability matrix and duplicate-number
// anomaly tables. Tables are built entirely in memory; writing them is the
// tabular package's job.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/mbse-export/internal/markup"
	"github.com/pdiddy/mbse-export/pkg/types"
)

// ErrUnresolvedLabel reports an entity that references a label id the
// export does not declare.
var ErrUnresolvedLabel = errors.New("unresolved label")

const listSep = ", "

// Table is one output file worth of rows.
type Table struct {
	// File is the output file name, relative to the output directory.
	File string
	// Header holds one or more stacked header rows.
	Header [][]string
	Rows   [][]string
	// Optional tables are only written when they have rows.
	Optional bool
}

// Records returns header rows followed by data rows.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Header)+len(t.Rows))
	out = append(out, t.Header...)
	return append(out, t.Rows...)
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// refColumn describes one cross-reference column: relationships of kind
// whose target has one of the listed classes (any class when empty).
type refColumn struct {
	header  string
	kind    types.RelationKind
	targets []types.Class
}

var (
	colDecomposes   = refColumn{header: "Decomposes", kind: types.RelationDecomposes}
	colDecomposedBy = refColumn{header: "Decomposed by", kind: types.RelationDecomposedBy}
	colSatisfiedBy  = refColumn{header: "Satisfied by", kind: types.RelationSatisfiedBy, targets: []types.Class{types.ClassAction}}
	colSatisfies    = refColumn{header: "Satisfies", kind: types.RelationSatisfies, targets: []types.Class{types.ClassRequirement}}
)

// Builder produces report tables from one graph.
type Builder struct {
	g      *types.Graph
	render markup.Renderer
	cfg    types.ReportConfig
}

// NewBuilder returns a Builder. A nil renderer means plain text.
func NewBuilder(g *types.Graph, render markup.Renderer, cfg types.ReportConfig) *Builder {
	if render == nil {
		render = markup.NewPlainText()
	}
	return &Builder{g: g, render: render, cfg: cfg}
}

// Build returns every enabled table, in a fixed order, or the first error.
func (b *Builder) Build() ([]Table, error) {
	var tables []Table

	steps := []struct {
		kind  types.ReportKind
		build func() (Table, error)
	}{
		{types.ReportRequirements, b.Requirements},
		{types.ReportActions, b.Actions},
		{types.ReportAssets, b.Assets},
		{types.ReportMatrix, b.Matrix},
	}
	for _, s := range steps {
		if !b.cfg.Enabled(s.kind) {
			continue
		}
		t, err := s.build()
		if err != nil {
			return nil, fmt.Errorf("building %s report: %w", s.kind, err)
		}
		tables = append(tables, t)
	}

	if b.cfg.Enabled(types.ReportDuplicates) {
		tables = append(tables, b.Duplicates()...)
	}
	return tables, nil
}

// Requirements builds the requirements table.
func (b *Builder) Requirements() (Table, error) {
	cols := []refColumn{colDecomposes, colDecomposedBy, colSatisfiedBy}
	t := Table{
		File:   b.cfg.Files.Requirements,
		Header: [][]string{withRefHeaders([]string{"Number", "Name", "Description", "Priority", "Status", "Labels"}, cols)},
	}
	for _, r := range b.g.Requirements {
		labels, err := b.labels(r)
		if err != nil {
			return Table{}, err
		}
		row := []string{r.Number, r.Name, b.render.Render(r.Description), r.Priority, r.Status, labels}
		t.Rows = append(t.Rows, b.withRefs(row, r, cols))
	}
	return t, nil
}

// Actions builds the actions table.
func (b *Builder) Actions() (Table, error) {
	cols := []refColumn{colDecomposes, colDecomposedBy, colSatisfies}
	t := Table{
		File:   b.cfg.Files.Actions,
		Header: [][]string{withRefHeaders([]string{"Number", "Name", "Description", "Labels"}, cols)},
	}
	for _, a := range b.g.Actions {
		labels, err := b.labels(a)
		if err != nil {
			return Table{}, err
		}
		row := []string{a.Number, a.Name, b.render.Render(a.Description), labels}
		t.Rows = append(t.Rows, b.withRefs(row, a, cols))
	}
	return t, nil
}

// Assets builds the assets table.
func (b *Builder) Assets() (Table, error) {
	cols := []refColumn{colDecomposes, colDecomposedBy}
	t := Table{
		File:   b.cfg.Files.Assets,
		Header: [][]string{withRefHeaders([]string{"Number", "Name", "Description"}, cols)},
	}
	for _, a := range b.g.Assets {
		row := []string{a.Number, a.Name, b.render.Render(a.Description)}
		t.Rows = append(t.Rows, b.withRefs(row, a, cols))
	}
	return t, nil
}

func withRefHeaders(header []string, cols []refColumn) []string {
	for _, c := range cols {
		header = append(header, c.header)
	}
	return header
}

func (b *Builder) withRefs(row []string, e types.Entity, cols []refColumn) []string {
	for _, c := range cols {
		row = append(row, b.refs(e, c))
	}
	return row
}

// refs lists the targets of e's outgoing relationships matching col, in
// relationship order. Targets that were not extracted are left out.
func (b *Builder) refs(e types.Entity, col refColumn) string {
	var parts []string
	for _, r := range b.g.Relationships.From(e.Common().ID) {
		if r.Kind != col.kind {
			continue
		}
		target, ok := b.g.Lookup(r.Target)
		if !ok {
			continue
		}
		if target.Class() == e.Class() && !b.cfg.SameClassReferences {
			continue
		}
		if len(col.targets) > 0 && !hasClass(col.targets, target.Class()) {
			continue
		}
		parts = append(parts, reference(target))
	}
	return strings.Join(parts, listSep)
}

func hasClass(classes []types.Class, c types.Class) bool {
	for _, x := range classes {
		if x == c {
			return true
		}
	}
	return false
}

// reference formats an entity as "<number> <name>".
func reference(e types.Entity) string {
	c := e.Common()
	return strings.TrimSpace(c.Number + " " + c.Name)
}

// labels joins the names of e's labels.
func (b *Builder) labels(e types.Entity) (string, error) {
	c := e.Common()
	names := make([]string, 0, len(c.Labels))
	for _, id := range c.Labels {
		name, ok := b.g.Labels.Name(id)
		if !ok {
			return "", fmt.Errorf("%w: %q on %s %s", ErrUnresolvedLabel, id, e.Class(), c.ID)
		}
		names = append(names, name)
	}
	return strings.Join(names, listSep), nil
}
