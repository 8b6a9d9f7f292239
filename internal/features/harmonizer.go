// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package features

import (
	"errors"
)

// ErrNoSources indicates harmonization was attempted with no usable input.
var ErrNoSources = errors.New("no source tables to harmonize")

// SourceTable is one raw input table: named numeric values per row.
// Column sets may differ between sources; harmonization unifies them.
type SourceTable struct {
	// Name identifies the source and becomes the data_source provenance
	// value for every row it contributes.
	Name string

	// Rows holds named numeric values. Non-numeric source attributes must
	// be encoded by the loader before reaching the harmonizer.
	Rows []map[string]float64
}

// Harmonize merges heterogeneous source tables into one unified feature
// table. The schema is the union of all source columns in first-seen
// order; rows missing a column are zero-filled, and every column is
// min-max scaled to [0, 1] afterwards.
func Harmonize(sources []SourceTable) (*Table, error) {
	columns := unionColumns(sources)
	if len(columns) == 0 {
		return nil, ErrNoSources
	}

	table := NewTable(columns)
	for _, src := range sources {
		for _, row := range src.Rows {
			table.AddRow(src.Name, row)
		}
	}

	if table.NumRows() == 0 {
		return nil, ErrNoSources
	}

	table.ScaleMinMax()
	return table, nil
}

// unionColumns builds the deterministic union schema: per row, column
// names are visited in sorted order; across rows and sources, first seen
// wins.
func unionColumns(sources []SourceTable) []string {
	var columns []string
	seen := make(map[string]struct{})

	for _, src := range sources {
		for _, row := range src.Rows {
			for _, name := range sortedKeys(row) {
				if _, ok := seen[name]; !ok {
					seen[name] = struct{}{}
					columns = append(columns, name)
				}
			}
		}
	}
	return columns
}

// sortedKeys returns the map keys in ascending order.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Insertion sort; feature rows carry a handful of columns.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
