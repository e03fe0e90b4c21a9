// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import (
	"fmt"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/table"
)

// groupKey turns a cell into a comparable map key. Integral numbers of any
// type share a key so that 7 and 7.0 group together.
func groupKey(v any) any {
	if n, ok := table.AsInt(v); ok {
		return n
	}
	switch x := v.(type) {
	case string, float64, bool:
		return x
	}
	return fmt.Sprintf("%T:%v", v, v)
}

// numericCell returns the float value of a non-null numeric cell. ok is false
// for null. Non-numeric cells are a precondition error.
func numericCell(v any, column string, row int) (f float64, ok bool, err error) {
	if v == nil {
		return 0, false, nil
	}
	f, ok = table.AsFloat(v)
	if !ok {
		return 0, false, apperrors.Preconditionf("column %q row %d: non-numeric value %v", column, row, v)
	}
	return f, true, nil
}

// grouped is an insertion-ordered aggregation keyed by groupKey.
type grouped[T any] struct {
	index map[any]int
	items []*T
}

func newGrouped[T any]() *grouped[T] {
	return &grouped[T]{index: make(map[any]int)}
}

// get returns the aggregate for key, creating it on first use.
func (g *grouped[T]) get(key any) *T {
	if i, ok := g.index[key]; ok {
		return g.items[i]
	}
	item := new(T)
	g.index[key] = len(g.items)
	g.items = append(g.items, item)
	return item
}

func (g *grouped[T]) size() int { return len(g.items) }

// floats projects every aggregate to a float.
func (g *grouped[T]) floats(f func(*T) float64) []float64 {
	out := make([]float64, len(g.items))
	for i, item := range g.items {
		out[i] = f(item)
	}
	return out
}
