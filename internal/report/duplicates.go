// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"strconv"

	"github.com/pdiddy/mbse-export/pkg/types"
)

// Duplicate is a number shared by more than one entity of a class.
type Duplicate struct {
	Number string
	Count  int
}

// Duplicates groups entities by number and returns the numbers seen more
// than once, in the order their first repeat was found.
func Duplicates(entities []types.Entity) []Duplicate {
	seen := make(map[string]bool, len(entities))
	index := make(map[string]int)
	var out []Duplicate

	for _, e := range entities {
		n := e.Common().Number
		if !seen[n] {
			seen[n] = true
			continue
		}
		if i, ok := index[n]; ok {
			out[i].Count++
			continue
		}
		index[n] = len(out)
		out = append(out, Duplicate{Number: n, Count: 2})
	}
	return out
}

// DuplicatesTable builds the anomaly table for one class. The table is
// optional: a clean class produces no file.
func DuplicatesTable(file string, entities []types.Entity) Table {
	t := Table{
		File:     file,
		Header:   [][]string{{"Entity Number", "# of occurrences"}},
		Optional: true,
	}
	for _, d := range Duplicates(entities) {
		t.Rows = append(t.Rows, []string{d.Number, strconv.Itoa(d.Count)})
	}
	return t
}

// Duplicates builds one anomaly table per entity class.
func (b *Builder) Duplicates() []Table {
	files := map[types.Class]string{
		types.ClassRequirement: b.cfg.Files.DuplicateRequirements,
		types.ClassAction:      b.cfg.Files.DuplicateActions,
		types.ClassAsset:       b.cfg.Files.DuplicateAssets,
	}
	tables := make([]Table, 0, len(types.Classes))
	for _, c := range types.Classes {
		tables = append(tables, DuplicatesTable(files[c], b.g.OfClass(c)))
	}
	return tables
}
