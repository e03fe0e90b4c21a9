// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package query

import (
	"strings"
	"time"
)

// WhereBuilder collects AND-ed predicates with ? markers and their bound
// values. Optional filters are added only when set, so callers can pass
// report options through without branching.
//
//	wb := query.NewWhereBuilder().
//	    AddWindow("s.sale_date", from, until).
//	    AddIn("s.customer_id", 1, 2)
//	clause, args := wb.Build()
//	// s.sale_date >= ? AND s.sale_date < ? AND s.customer_id IN (?, ?)
type WhereBuilder struct {
	clauses []string
	args    []any
}

func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// AddClause appends a predicate and the values for its markers.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddDateRange bounds column inclusively on both ends. A nil bound is left open.
func (wb *WhereBuilder) AddDateRange(column string, start, end *time.Time) *WhereBuilder {
	if start != nil {
		wb.AddClause(column+" >= ?", *start)
	}
	if end != nil {
		wb.AddClause(column+" <= ?", *end)
	}
	return wb
}

// AddWindow restricts column to the half-open window [from, until).
func (wb *WhereBuilder) AddWindow(column string, from, until time.Time) *WhereBuilder {
	return wb.AddClause(column+" >= ?", from).AddClause(column+" < ?", until)
}

// AddIn appends "column IN (?, ...)". No values adds nothing.
func (wb *WhereBuilder) AddIn(column string, values ...any) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	markers := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return wb.AddClause(column+" IN ("+markers+")", values...)
}

// AddEquals appends "column = ?" when value is non-nil.
func AddEquals[T any](wb *WhereBuilder, column string, value *T) *WhereBuilder {
	if value == nil {
		return wb
	}
	return wb.AddClause(column+" = ?", *value)
}

// Build joins the predicates with AND. With no predicates it returns "1=1"
// so the result can always follow a WHERE keyword.
func (wb *WhereBuilder) Build() (string, []any) {
	if wb.IsEmpty() {
		return "1=1", []any{}
	}
	args := make([]any, len(wb.args))
	copy(args, wb.args)
	return strings.Join(wb.clauses, " AND "), args
}

// BuildWithPrefix is Build with a leading "WHERE ".
func (wb *WhereBuilder) BuildWithPrefix() (string, []any) {
	clause, args := wb.Build()
	return "WHERE " + clause, args
}

func (wb *WhereBuilder) Count() int { return len(wb.clauses) }

func (wb *WhereBuilder) IsEmpty() bool { return len(wb.clauses) == 0 }
