// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular writes report tables as comma-separated files.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/mbse-export/internal/report"
)

// sepDirective tells spreadsheet applications which delimiter the file
// uses. It is written raw: a quoted directive is not recognised.
const sepDirective = "sep=,\n"

// Writer writes tables into Dir.
type Writer struct {
	Dir string
	// SepDirective prepends a "sep=," row to every file.
	SepDirective bool
}

// Result describes what happened to one table.
type Result struct {
	Path string
	Rows int
	// Removed is set when an empty optional table deleted a stale file.
	Removed bool
	// Skipped is set when an empty optional table had nothing to write.
	Skipped bool
}

// Write writes t to Dir/t.File. The file is replaced atomically. An
// optional table with no rows is not written and any earlier file of the
// same name is removed, so a file exists only when it has content.
func (w *Writer) Write(t report.Table) (Result, error) {
	path := filepath.Join(w.Dir, t.File)
	res := Result{Path: path, Rows: len(t.Rows)}

	if t.Optional && t.Empty() {
		err := os.Remove(path)
		switch {
		case err == nil:
			res.Removed = true
		case errors.Is(err, os.ErrNotExist):
			res.Skipped = true
		default:
			return res, fmt.Errorf("removing stale %s: %w", path, err)
		}
		return res, nil
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return res, fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(w.Dir, "."+t.File+".*")
	if err != nil {
		return res, fmt.Errorf("creating temp file for %s: %w", t.File, err)
	}
	defer os.Remove(tmp.Name())

	if err := w.encode(tmp, t); err != nil {
		tmp.Close()
		return res, fmt.Errorf("writing %s: %w", t.File, err)
	}
	if err := tmp.Close(); err != nil {
		return res, fmt.Errorf("closing %s: %w", t.File, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return res, fmt.Errorf("setting mode on %s: %w", t.File, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return res, fmt.Errorf("replacing %s: %w", path, err)
	}
	return res, nil
}

// WriteAll writes tables in order and stops at the first error.
func (w *Writer) WriteAll(tables []report.Table) ([]Result, error) {
	results := make([]Result, 0, len(tables))
	for _, t := range tables {
		res, err := w.Write(t)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Encode writes t as CSV to out, honouring the sep directive setting.
func (w *Writer) Encode(out io.Writer, t report.Table) error {
	return w.encode(out, t)
}

func (w *Writer) encode(out io.Writer, t report.Table) error {
	if w.SepDirective {
		if _, err := io.WriteString(out, sepDirective); err != nil {
			return err
		}
	}
	cw := csv.NewWriter(out)
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}
