// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

// Package table holds the tabular result set passed between the database
// collaborator, the analysis strategies and the model registry.
//
// A Table is column-ordered and row-major. Cell values are normalized when
// scanned so that consumers only see nil, bool, int64, float64, string,
// time.Time or driver-specific values that have no numeric meaning.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
)

// Table is a tabular query result.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`

	// Elapsed is execution metadata attached by the timing wrapper. It never
	// changes the data.
	Elapsed time.Duration `json:"elapsed_ns,omitempty"`
}

// New creates a table. Rows are used as given; each must have len(columns) cells.
func New(columns []string, rows [][]any) *Table {
	if rows == nil {
		rows = [][]any{}
	}
	return &Table{Columns: columns, Rows: rows}
}

// FromRecords builds a table from maps. Columns fix the order; keys missing
// from a record become nil.
//
//	t := table.FromRecords([]string{"total_price"},
//	    map[string]any{"total_price": 100.0},
//	    map[string]any{"total_price": 200.0},
//	)
func FromRecords(columns []string, records ...map[string]any) *Table {
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = Normalize(rec[c], "")
		}
		rows = append(rows, row)
	}
	return New(columns, rows)
}

// FromColumn builds a single-column table, convenient for numeric series.
func FromColumn[T any](name string, values ...T) *Table {
	rows := make([][]any, len(values))
	for i, v := range values {
		rows[i] = []any{Normalize(v, "")}
	}
	return New([]string{name}, rows)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// Shape returns the "rows x cols" summary used in logs.
func (t *Table) Shape() string {
	return fmt.Sprintf("%d rows x %d cols", t.Len(), t.Width())
}

// ColumnIndex returns the position of the first column called name, or -1.
// Tables are shared read-only between goroutines once cached, so lookups
// never memoize.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns every cell of a column.
func (t *Table) Column(name string) ([]any, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, true
}

// Value returns the cell at row i, column name.
func (t *Table) Value(i int, name string) (any, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 || i < 0 || i >= t.Len() || idx >= len(t.Rows[i]) {
		return nil, false
	}
	return t.Rows[i][idx], true
}

// Floats returns the non-null numeric cells of a column. A cell that is
// neither null nor numeric is a precondition error.
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, apperrors.ErrMissingColumn)
	}
	out := make([]float64, 0, len(col))
	for i, v := range col {
		if v == nil {
			continue
		}
		f, ok := AsFloat(v)
		if !ok {
			return nil, apperrors.Preconditionf("column %q row %d: non-numeric value %v", name, i, v)
		}
		out = append(out, f)
	}
	return out, nil
}

// Record returns row i as a map keyed by column name.
func (t *Table) Record(i int) map[string]any {
	if i < 0 || i >= t.Len() {
		return nil
	}
	rec := make(map[string]any, len(t.Columns))
	for j, c := range t.Columns {
		if j < len(t.Rows[i]) {
			rec[c] = t.Rows[i][j]
		}
	}
	return rec
}

// Records returns every row as a map.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, t.Len())
	for i := range out {
		out[i] = t.Record(i)
	}
	return out
}

// AsFloat converts a normalized cell to float64.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	case interface{ Float64() float64 }:
		return x.Float64(), true
	}
	return 0, false
}

// AsInt converts a normalized cell to int64. Floats convert only when integral.
func AsInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case uint64:
		return int64(x), true
	case float64:
		if x == float64(int64(x)) {
			return int64(x), true
		}
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		return n, err == nil
	}
	return 0, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AsTime converts a time.Time cell or a date string in one of the common SQL
// layouts.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
