// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import "github.com/pdiddy/mbse-export/pkg/types"

// Matrix is the requirements (rows) by actions (columns) traceability grid.
// A cell is marked when the requirement has a satisfied-by relationship to
// the action. Both axes keep document order.
type Matrix struct {
	Requirements []*types.Requirement
	Actions      []*types.Action
	marked       [][]bool
}

// BuildMatrix derives the traceability grid from g.
func BuildMatrix(g *types.Graph) *Matrix {
	m := &Matrix{
		Requirements: g.Requirements,
		Actions:      g.Actions,
		marked:       make([][]bool, len(g.Requirements)),
	}

	column := make(map[string]int, len(g.Actions))
	for j, a := range g.Actions {
		column[a.ID] = j
	}

	for i, r := range g.Requirements {
		m.marked[i] = make([]bool, len(g.Actions))
		for _, rel := range g.Relationships.From(r.ID) {
			if rel.Kind != types.RelationSatisfiedBy {
				continue
			}
			// Targets that are not actions have no column.
			if j, ok := column[rel.Target]; ok {
				m.marked[i][j] = true
			}
		}
	}
	return m
}

// Marked reports whether requirement i is satisfied by action j.
func (m *Matrix) Marked(i, j int) bool {
	return m.marked[i][j]
}

// Count returns the number of marked cells.
func (m *Matrix) Count() int {
	n := 0
	for _, row := range m.marked {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Cells densifies the grid: every cell starts as placeholder and marked
// cells are then overwritten with marker.
func (m *Matrix) Cells(marker, placeholder string) [][]string {
	cells := make([][]string, len(m.Requirements))
	for i := range cells {
		cells[i] = make([]string, len(m.Actions))
		for j := range cells[i] {
			cells[i][j] = placeholder
		}
	}
	for i, row := range m.marked {
		for j, v := range row {
			if v {
				cells[i][j] = marker
			}
		}
	}
	return cells
}

// Matrix builds the traceability matrix table: four stacked header rows
// describing the action columns, then one row per requirement.
func (b *Builder) Matrix() (Table, error) {
	m := BuildMatrix(b.g)

	numbers := []string{"REQ/ACT Number", "REQ_Name", "REQ_Description", "REQ_Labels"}
	names := []string{"ACT_Name", "", "", ""}
	descriptions := []string{"ACT_Description", "", "", ""}
	labels := []string{"ACT_Labels", "", "", ""}
	for _, a := range m.Actions {
		l, err := b.labels(a)
		if err != nil {
			return Table{}, err
		}
		numbers = append(numbers, a.Number)
		names = append(names, a.Name)
		descriptions = append(descriptions, b.render.Render(a.Description))
		labels = append(labels, l)
	}

	t := Table{
		File:   b.cfg.Files.Matrix,
		Header: [][]string{numbers, names, descriptions, labels},
	}

	cells := m.Cells(b.cfg.Marker, b.cfg.Placeholder)
	for i, r := range m.Requirements {
		l, err := b.labels(r)
		if err != nil {
			return Table{}, err
		}
		row := append([]string{r.Number, r.Name, b.render.Render(r.Description), l}, cells[i]...)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
