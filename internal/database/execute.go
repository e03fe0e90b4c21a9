// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/database/query"
	"github.com/tomtom215/salesreport/internal/metrics"
	"github.com/tomtom215/salesreport/internal/table"
)

// ExecuteQuery runs a statement with :name placeholders and returns its rows.
func (db *DB) ExecuteQuery(ctx context.Context, q string, params map[string]any) (*table.Table, error) {
	bound, args, err := BindNamed(db.dialect, q, params)
	if err != nil {
		return nil, err
	}
	return db.query(ctx, "execute_query", bound, args)
}

// Query runs a statement with positional ? markers, as produced by
// query.Builder.BuildWithArgs.
func (db *DB) Query(ctx context.Context, q string, args ...any) (*table.Table, error) {
	bound := make([]any, len(args))
	for i, a := range args {
		bound[i] = bindValue(a)
	}
	return db.query(ctx, "query", Rebind(db.dialect, q), bound)
}

func (db *DB) query(ctx context.Context, op, q string, args []any) (*table.Table, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.Load().QueryContext(ctx, q, args...)
	if err != nil {
		metrics.RecordDBQuery(op, time.Since(start), err)
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer closeWithLog(rows, "rows")

	t, err := table.Scan(rows)
	metrics.RecordDBQuery(op, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Exec runs a statement that returns no rows and reports the rows affected.
// Drivers that cannot report it return 0.
func (db *DB) Exec(ctx context.Context, stmt string, params map[string]any) (int64, error) {
	bound, args, err := BindNamed(db.dialect, stmt, params)
	if err != nil {
		return 0, err
	}
	return db.exec(ctx, "exec", bound, args)
}

func (db *DB) exec(ctx context.Context, op, stmt string, args []any) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.Load().ExecContext(ctx, stmt, args...)
	metrics.RecordDBQuery(op, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("error executing statement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// SelectOptions describes a single-table SELECT.
type SelectOptions struct {
	Table   string
	Columns []string // defaults to *
	Where   string   // predicate with ? markers, without the WHERE keyword
	Args    []any
	OrderBy []query.Order
	Limit   int // 0 means no limit
}

func (o SelectOptions) build() (string, []any, error) {
	if err := query.CheckTableRef(o.Table); err != nil {
		return "", nil, err
	}
	b := query.NewBuilder().FromTable(o.Table)
	selectColumns(b, o.Columns)
	applyFilters(b, o.Where, o.Args, nil, "", o.OrderBy, o.Limit)
	return b.BuildWithArgs()
}

// ExecuteSelect runs SELECT columns FROM table with optional filtering,
// ordering and limit.
func (db *DB) ExecuteSelect(ctx context.Context, opts SelectOptions) (*table.Table, error) {
	return runBuilt(ctx, db, opts.build)
}

// Aggregation is one aggregate column: Expr AS Alias.
type Aggregation struct {
	Alias string
	Expr  string
}

// AggregationOptions describes a grouped aggregate query. Aggregations
// keep their order in the result.
type AggregationOptions struct {
	Table        string
	Aggregations []Aggregation
	GroupBy      []string
	Where        string
	Having       string
	OrderBy      []query.Order
	Args         []any
}

func (o AggregationOptions) build() (string, []any, error) {
	if err := query.CheckTableRef(o.Table); err != nil {
		return "", nil, err
	}
	if len(o.Aggregations) == 0 {
		return "", nil, apperrors.Preconditionf("at least one aggregation is required")
	}
	b := query.NewBuilder().FromTable(o.Table).Select(o.GroupBy...)
	for _, a := range o.Aggregations {
		if err := query.CheckIdentifier(a.Alias); err != nil {
			return "", nil, err
		}
		b.SelectField(a.Expr + " AS " + a.Alias)
	}
	applyFilters(b, o.Where, o.Args, o.GroupBy, o.Having, o.OrderBy, 0)
	return b.BuildWithArgs()
}

// ExecuteAggregation runs SELECT group_by..., expr AS alias... with optional
// WHERE, GROUP BY, HAVING and ORDER BY.
func (db *DB) ExecuteAggregation(ctx context.Context, opts AggregationOptions) (*table.Table, error) {
	return runBuilt(ctx, db, opts.build)
}

// JoinOptions describes a SELECT over a main table and its joins.
type JoinOptions struct {
	MainTable string
	Joins     []query.Join
	Columns   []string
	Where     string
	GroupBy   []string
	OrderBy   []query.Order
	Limit     int
	Args      []any
}

func (o JoinOptions) build() (string, []any, error) {
	if err := query.CheckTableRef(o.MainTable); err != nil {
		return "", nil, err
	}
	for _, j := range o.Joins {
		if err := query.CheckTableRef(j.Table); err != nil {
			return "", nil, err
		}
	}
	b := query.NewBuilder().FromTable(o.MainTable).Joins(o.Joins...)
	selectColumns(b, o.Columns)
	applyFilters(b, o.Where, o.Args, o.GroupBy, "", o.OrderBy, o.Limit)
	return b.BuildWithArgs()
}

// ExecuteJoinQuery runs a SELECT over MainTable joined with Joins.
func (db *DB) ExecuteJoinQuery(ctx context.Context, opts JoinOptions) (*table.Table, error) {
	return runBuilt(ctx, db, opts.build)
}

func selectColumns(b *query.Builder, columns []string) {
	if len(columns) == 0 {
		b.Select("*")
		return
	}
	b.Select(columns...)
}

func applyFilters(b *query.Builder, where string, args []any, groupBy []string, having string, orderBy []query.Order, limit int) {
	if where != "" {
		b.WhereArg(where, args...)
	}
	if len(groupBy) > 0 {
		b.GroupBy(groupBy...)
	}
	if having != "" {
		b.Having(having)
	}
	for _, o := range orderBy {
		b.OrderBy(o.Field, o.Direction)
	}
	if limit > 0 {
		b.Limit(limit)
	}
}

// positional is anything that runs ? statements; DB and Executor both do.
type positional interface {
	Query(ctx context.Context, q string, args ...any) (*table.Table, error)
}

func runBuilt(ctx context.Context, p positional, build func() (string, []any, error)) (*table.Table, error) {
	q, args, err := build()
	if err != nil {
		return nil, err
	}
	return p.Query(ctx, q, args...)
}

// ExecuteInsert inserts one row. Columns are written in sorted order.
func (db *DB) ExecuteInsert(ctx context.Context, tableName string, data map[string]any) (int64, error) {
	stmt, args, err := insertStatement(db.dialect, tableName, data)
	if err != nil {
		return 0, err
	}
	return db.exec(ctx, "insert", stmt, args)
}

func insertStatement(d Dialect, tableName string, data map[string]any) (string, []any, error) {
	if err := query.CheckIdentifier(tableName); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, apperrors.Preconditionf("insert into %s: no columns", tableName)
	}

	columns := make([]string, 0, len(data))
	for c := range data {
		if err := query.CheckIdentifier(c); err != nil {
			return "", nil, err
		}
		columns = append(columns, c)
	}
	sort.Strings(columns)

	marks := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		marks[i] = d.Placeholder(i + 1)
		args[i] = bindValue(data[c])
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, strings.Join(columns, ", "), strings.Join(marks, ", "))
	return stmt, args, nil
}

// GetTableInfo describes the columns of tableName. A table that does not
// exist is apperrors.ErrNotFound.
func (db *DB) GetTableInfo(ctx context.Context, tableName string) (*table.Table, error) {
	if err := query.CheckIdentifier(tableName); err != nil {
		return nil, err
	}
	stmt, params := db.dialect.TableInfo(tableName)
	t, err := db.ExecuteQuery(ctx, stmt, params)
	if err != nil {
		if isMissingTable(err) {
			return nil, fmt.Errorf("table %s: %w", tableName, apperrors.ErrNotFound)
		}
		return nil, err
	}
	if t.Empty() {
		return nil, fmt.Errorf("table %s: %w", tableName, apperrors.ErrNotFound)
	}
	return t, nil
}

func isMissingTable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "doesn't exist") || strings.Contains(msg, "no such table")
}
