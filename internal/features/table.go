// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package features provides the unified numeric feature table consumed by
// the advisory engine. Heterogeneous source tables are harmonized into one
// table of named float64 columns plus a data_source provenance column;
// feature vectors for held-out users are aligned to the training schema
// before segment prediction.
package features

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch indicates a feature vector is structurally incompatible
// with the table schema. Benign column absence is zero-padded instead.
var ErrSchemaMismatch = errors.New("feature schema mismatch")

// Table is a unified table of named numeric feature columns. Rows are
// historical users; column order is fixed at construction and is part of
// the schema identity.
type Table struct {
	columns  []string
	colIndex map[string]int
	rows     [][]float64
	sources  []string

	// Per-column scaling parameters, populated by ScaleMinMax so that
	// held-out vectors can be projected into the same [0, 1] space.
	mins   []float64
	spans  []float64
	scaled bool
}

// NewTable creates an empty table with the given column schema.
func NewTable(columns []string) *Table {
	colIndex := make(map[string]int, len(columns))
	for i, name := range columns {
		colIndex[name] = i
	}
	return &Table{
		columns:  columns,
		colIndex: colIndex,
	}
}

// AddRow appends a row built from named values. Columns absent from the
// map are zero-filled; values for unknown columns are ignored.
func (t *Table) AddRow(source string, values map[string]float64) {
	row := make([]float64, len(t.columns))
	for name, v := range values {
		if idx, ok := t.colIndex[name]; ok {
			row[idx] = v
		}
	}
	t.rows = append(t.rows, row)
	t.sources = append(t.sources, source)
}

// Columns returns the column names in schema order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the schema contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIndex[name]
	return ok
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Row returns the i-th row. The returned slice is shared, not copied;
// callers must treat it as read-only.
func (t *Table) Row(i int) []float64 {
	return t.rows[i]
}

// Source returns the data_source provenance of the i-th row.
func (t *Table) Source(i int) string {
	return t.sources[i]
}

// Value returns the named column value of the i-th row.
func (t *Table) Value(i int, column string) (float64, bool) {
	idx, ok := t.colIndex[column]
	if !ok {
		return 0, false
	}
	return t.rows[i][idx], true
}

// Align converts named values into a vector in schema column order.
// Missing columns are zero-padded. Values naming columns outside the
// schema are a structural mismatch: the caller supplied a vector from a
// different feature space.
func (t *Table) Align(values map[string]float64) ([]float64, error) {
	for name := range values {
		if _, ok := t.colIndex[name]; !ok {
			return nil, fmt.Errorf("%w: unknown column %q", ErrSchemaMismatch, name)
		}
	}

	vec := make([]float64, len(t.columns))
	for name, v := range values {
		vec[t.colIndex[name]] = v
	}
	return vec, nil
}

// ScaleMinMax rescales every column to [0, 1] in place. Constant columns
// are set to 0.5, mirroring how equal scores are normalized elsewhere in
// the scoring pipeline.
func (t *Table) ScaleMinMax() {
	if len(t.rows) == 0 {
		return
	}

	t.mins = make([]float64, len(t.columns))
	t.spans = make([]float64, len(t.columns))

	for c := range t.columns {
		minV, maxV := t.rows[0][c], t.rows[0][c]
		for _, row := range t.rows {
			if row[c] < minV {
				minV = row[c]
			}
			if row[c] > maxV {
				maxV = row[c]
			}
		}

		span := maxV - minV
		t.mins[c] = minV
		t.spans[c] = span
		if span == 0 {
			for _, row := range t.rows {
				row[c] = 0.5
			}
			continue
		}
		for _, row := range t.rows {
			row[c] = (row[c] - minV) / span
		}
	}
	t.scaled = true
}

// ScaleValues projects raw named values into the scaled feature space,
// clamped to [0, 1]. Values for columns outside the schema are dropped;
// constant columns map to 0.5. A no-op before ScaleMinMax.
func (t *Table) ScaleValues(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for name, v := range values {
		idx, ok := t.colIndex[name]
		if !ok {
			continue
		}
		if !t.scaled {
			out[name] = v
			continue
		}
		if t.spans[idx] == 0 {
			out[name] = 0.5
			continue
		}
		s := (v - t.mins[idx]) / t.spans[idx]
		if s < 0 {
			s = 0
		} else if s > 1 {
			s = 1
		}
		out[name] = s
	}
	return out
}
