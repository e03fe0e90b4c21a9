// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/salesreport/internal/apperrors"
)

// buildError is a Build failure. It unwraps to apperrors.ErrPrecondition.
type buildError string

func (e buildError) Error() string { return string(e) }
func (e buildError) Unwrap() error { return apperrors.ErrPrecondition }

var (
	// ErrSelectRequired is returned by Build when no SELECT fields were added.
	ErrSelectRequired error = buildError("SELECT fields required")

	// ErrFromRequired is returned by Build when no FROM table was set.
	ErrFromRequired error = buildError("FROM table required")
)

// JoinKind is the join type of a Join.
type JoinKind string

const (
	JoinInner JoinKind = "INNER"
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
)

// Join is one JOIN clause.
type Join struct {
	Kind  JoinKind `json:"kind"`
	Table string   `json:"table"`
	On    string   `json:"on"`
}

// String renders the clause, e.g. "INNER JOIN products p ON s.product_id = p.product_id".
func (j Join) String() string {
	kind := j.Kind
	if kind == "" {
		kind = JoinInner
	}
	return fmt.Sprintf("%s JOIN %s ON %s", kind, j.Table, j.On)
}

// Order is one ORDER BY item.
type Order struct {
	Field     string
	Direction string
}

// Builder accumulates the clauses of a SELECT statement.
type Builder struct {
	fields  []string
	table   string
	joins   []Join
	where   []string
	groupBy []string
	having  []string
	orderBy []Order
	limit   *int
	args    []any
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Reset clears every clause and bound argument.
func (b *Builder) Reset() *Builder {
	*b = Builder{}
	return b
}

// Select appends fields or expressions to the SELECT list.
func (b *Builder) Select(fields ...string) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// SelectField appends one field or expression to the SELECT list.
func (b *Builder) SelectField(field string) *Builder {
	b.fields = append(b.fields, field)
	return b
}

// FromTable sets the FROM table, optionally with an alias ("sales s").
func (b *Builder) FromTable(table string) *Builder {
	b.table = table
	return b
}

func (b *Builder) InnerJoin(table, on string) *Builder {
	return b.join(JoinInner, table, on)
}

func (b *Builder) LeftJoin(table, on string) *Builder {
	return b.join(JoinLeft, table, on)
}

func (b *Builder) RightJoin(table, on string) *Builder {
	return b.join(JoinRight, table, on)
}

// Joins appends prepared joins in order.
func (b *Builder) Joins(joins ...Join) *Builder {
	b.joins = append(b.joins, joins...)
	return b
}

func (b *Builder) join(kind JoinKind, table, on string) *Builder {
	b.joins = append(b.joins, Join{Kind: kind, Table: table, On: on})
	return b
}

// Where appends a raw predicate. Predicates are combined with AND.
func (b *Builder) Where(predicate string) *Builder {
	b.where = append(b.where, predicate)
	return b
}

// WhereEquals appends "field = value". String values are single-quoted and
// not escaped.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	return b.Where(fmt.Sprintf("%s = %s", field, literal(value)))
}

// WhereIn appends "field IN (v1, v2, ...)" with each value rendered like WhereEquals.
func (b *Builder) WhereIn(field string, values ...any) *Builder {
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = literal(v)
	}
	return b.Where(fmt.Sprintf("%s IN (%s)", field, strings.Join(rendered, ", ")))
}

// WhereBetween appends "field BETWEEN lo AND hi". Both bounds are quoted when
// lo is a string.
func (b *Builder) WhereBetween(field string, lo, hi any) *Builder {
	var loStr, hiStr string
	if _, ok := lo.(string); ok {
		loStr = fmt.Sprintf("'%v'", lo)
		hiStr = fmt.Sprintf("'%v'", hi)
	} else {
		loStr = literal(lo)
		hiStr = literal(hi)
	}
	return b.Where(fmt.Sprintf("%s BETWEEN %s AND %s", field, loStr, hiStr))
}

// WhereArg appends a predicate containing ? markers and binds args to them.
func (b *Builder) WhereArg(predicate string, args ...any) *Builder {
	b.where = append(b.where, predicate)
	b.args = append(b.args, args...)
	return b
}

// WhereClause appends every clause of wb together with its arguments.
func (b *Builder) WhereClause(wb *WhereBuilder) *Builder {
	if wb == nil || wb.IsEmpty() {
		return b
	}
	b.where = append(b.where, wb.clauses...)
	b.args = append(b.args, wb.args...)
	return b
}

func (b *Builder) GroupBy(fields ...string) *Builder {
	b.groupBy = append(b.groupBy, fields...)
	return b
}

// Having appends a HAVING predicate. Predicates are combined with AND.
func (b *Builder) Having(predicate string) *Builder {
	b.having = append(b.having, predicate)
	return b
}

// OrderBy appends an ORDER BY item. The direction is upper-cased; an empty
// direction means ASC.
func (b *Builder) OrderBy(field, direction string) *Builder {
	direction = strings.ToUpper(strings.TrimSpace(direction))
	if direction == "" {
		direction = "ASC"
	}
	b.orderBy = append(b.orderBy, Order{Field: field, Direction: direction})
	return b
}

// Limit sets the row limit. Negative values are ignored.
func (b *Builder) Limit(n int) *Builder {
	if n >= 0 {
		b.limit = &n
	}
	return b
}

// Build renders the statement. It does not modify the builder.
func (b *Builder) Build() (string, error) {
	if len(b.fields) == 0 {
		return "", ErrSelectRequired
	}
	if b.table == "" {
		return "", ErrFromRequired
	}

	parts := make([]string, 0, 4+len(b.joins))
	parts = append(parts, "SELECT "+strings.Join(b.fields, ", "), "FROM "+b.table)
	for _, j := range b.joins {
		parts = append(parts, j.String())
	}
	if len(b.where) > 0 {
		parts = append(parts, "WHERE "+strings.Join(b.where, " AND "))
	}
	if len(b.groupBy) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(b.groupBy, ", "))
	}
	if len(b.having) > 0 {
		parts = append(parts, "HAVING "+strings.Join(b.having, " AND "))
	}
	if len(b.orderBy) > 0 {
		items := make([]string, len(b.orderBy))
		for i, o := range b.orderBy {
			items[i] = o.Field + " " + o.Direction
		}
		parts = append(parts, "ORDER BY "+strings.Join(items, ", "))
	}
	if b.limit != nil {
		parts = append(parts, "LIMIT "+strconv.Itoa(*b.limit))
	}
	return strings.Join(parts, "\n"), nil
}

// BuildWithArgs renders the statement and returns the values bound through
// WhereArg and WhereClause, in marker order.
func (b *Builder) BuildWithArgs() (string, []any, error) {
	sql, err := b.Build()
	if err != nil {
		return "", nil, err
	}
	args := make([]any, len(b.args))
	copy(args, b.args)
	return sql, args, nil
}

func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + val + "'"
	default:
		return fmt.Sprint(val)
	}
}
