// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"context"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/ops"
	"github.com/tomtom215/salesreport/internal/table"
)

// Querier runs read queries. *DB and *Executor implement it, so reports can
// run directly or behind an operation wrapper stack.
type Querier interface {
	ExecuteQuery(ctx context.Context, q string, params map[string]any) (*table.Table, error)
	Query(ctx context.Context, q string, args ...any) (*table.Table, error)
	Dialect() Dialect
}

var (
	_ Querier = (*DB)(nil)
	_ Querier = (*Executor)(nil)
)

// Executor runs queries on a DB through a wrapper stack. The call name is
// "execute_query" for named parameters and "query" for positional ones; the
// statement is the first call argument.
type Executor struct {
	db  *DB
	run ops.Func[*table.Table]
}

// WithOperations returns an Executor that sends every query through w.
func (db *DB) WithOperations(w ops.Wrapper[*table.Table]) *Executor {
	return &Executor{db: db, run: w(db.call)}
}

// Wrapped is WithOperations over the standard DatabaseOperation stack, with
// connection errors classified by IsConnectionError.
func (db *DB) Wrapped(opts ops.Options) *Executor {
	if opts.IsConnectionError == nil {
		opts.IsConnectionError = IsConnectionError
	}
	return db.WithOperations(ops.DatabaseOperation[*table.Table](opts))
}

// call is the unwrapped operation behind an Executor.
func (db *DB) call(ctx context.Context, c ops.Call) (*table.Table, error) {
	if len(c.Args) == 0 {
		return nil, apperrors.Preconditionf("%s: missing statement", c.Name)
	}
	q, ok := c.Args[0].(string)
	if !ok {
		return nil, apperrors.Preconditionf("%s: statement must be a string, got %T", c.Name, c.Args[0])
	}
	if len(c.Args) > 1 {
		if len(c.Kwargs) > 0 {
			return nil, apperrors.Preconditionf("%s: cannot mix positional and named parameters", c.Name)
		}
		return db.Query(ctx, q, c.Args[1:]...)
	}
	return db.ExecuteQuery(ctx, q, c.Kwargs)
}

// DB returns the wrapped handle.
func (e *Executor) DB() *DB { return e.db }

// Dialect returns the dialect of the wrapped handle.
func (e *Executor) Dialect() Dialect { return e.db.Dialect() }

// ExecuteQuery runs a :name statement through the wrapper stack.
func (e *Executor) ExecuteQuery(ctx context.Context, q string, params map[string]any) (*table.Table, error) {
	return e.run(ctx, ops.Call{Name: "execute_query", Args: []any{q}, Kwargs: params})
}

// Query runs a ? statement through the wrapper stack.
func (e *Executor) Query(ctx context.Context, q string, args ...any) (*table.Table, error) {
	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, q)
	callArgs = append(callArgs, args...)
	return e.run(ctx, ops.Call{Name: "query", Args: callArgs})
}

// ExecuteSelect is DB.ExecuteSelect through the wrapper stack.
func (e *Executor) ExecuteSelect(ctx context.Context, opts SelectOptions) (*table.Table, error) {
	return runBuilt(ctx, e, opts.build)
}

// ExecuteAggregation is DB.ExecuteAggregation through the wrapper stack.
func (e *Executor) ExecuteAggregation(ctx context.Context, opts AggregationOptions) (*table.Table, error) {
	return runBuilt(ctx, e, opts.build)
}

// ExecuteJoinQuery is DB.ExecuteJoinQuery through the wrapper stack.
func (e *Executor) ExecuteJoinQuery(ctx context.Context, opts JoinOptions) (*table.Table, error) {
	return runBuilt(ctx, e, opts.build)
}
