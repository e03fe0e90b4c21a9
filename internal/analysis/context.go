// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/database/query"
	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/metrics"
	"github.com/tomtom215/salesreport/internal/table"
)

// DefaultTable is read when PerformAnalysis is called without data.
const DefaultTable = "sales"

// Source runs a query and returns its rows. *database.DB satisfies it, as
// does any operation-wrapped executor.
type Source interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (*table.Table, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, query string, params map[string]any) (*table.Table, error)

func (f SourceFunc) ExecuteQuery(ctx context.Context, query string, params map[string]any) (*table.Table, error) {
	return f(ctx, query, params)
}

// Context runs the current strategy, fetching data from its source when the
// caller supplies none. It is not safe for concurrent SetStrategy calls.
type Context struct {
	strategy Strategy
	source   Source
}

// NewContext returns a context using strategy. source may be nil when every
// call supplies its own table.
func NewContext(strategy Strategy, source Source) *Context {
	return &Context{strategy: strategy, source: source}
}

// SetStrategy swaps the current strategy.
func (c *Context) SetStrategy(s Strategy) {
	c.strategy = s
}

// Strategy returns the current strategy.
func (c *Context) Strategy() Strategy {
	return c.strategy
}

// PerformAnalysis analyzes data, or every row of the sales table when data is nil.
func (c *Context) PerformAnalysis(ctx context.Context, data *table.Table) (Metrics, error) {
	if data == nil {
		var err error
		if data, err = c.load(ctx, DefaultTable); err != nil {
			return nil, err
		}
	}
	return c.run(ctx, c.strategy, data)
}

// PerformAnalysisOn analyzes every row of tableName.
func (c *Context) PerformAnalysisOn(ctx context.Context, tableName string) (Metrics, error) {
	data, err := c.load(ctx, tableName)
	if err != nil {
		return nil, err
	}
	return c.run(ctx, c.strategy, data)
}

// CompareStrategies runs every strategy over the same data, keyed by
// strategy name. A failing strategy contributes {"error": message} instead of
// failing the comparison; only loading the data can fail.
func (c *Context) CompareStrategies(ctx context.Context, strategies []Strategy, data *table.Table) (map[string]Metrics, error) {
	if data == nil {
		var err error
		if data, err = c.load(ctx, DefaultTable); err != nil {
			return nil, err
		}
	}

	results := make(map[string]Metrics, len(strategies))
	for _, s := range strategies {
		m, err := c.run(ctx, s, data)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("strategy", s.Name()).Msg("Strategy failed during comparison")
			results[s.Name()] = Metrics{"error": err.Error()}
			continue
		}
		results[s.Name()] = m
	}
	return results, nil
}

func (c *Context) run(ctx context.Context, s Strategy, data *table.Table) (Metrics, error) {
	if s == nil {
		return nil, apperrors.Preconditionf("no analysis strategy set")
	}
	start := time.Now()
	m, err := s.Analyze(data)
	elapsed := time.Since(start)
	metrics.RecordAnalysis(s.Kind().String(), elapsed)

	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().
		Str("strategy", s.Kind().String()).
		Int("rows", data.Len()).
		Dur("duration", elapsed).
		Msg("Analysis complete")
	return m, nil
}

func (c *Context) load(ctx context.Context, tableName string) (*table.Table, error) {
	if err := query.CheckIdentifier(tableName); err != nil {
		return nil, err
	}
	if c.source == nil {
		return nil, apperrors.Preconditionf("no data given and no source configured")
	}
	data, err := c.source.ExecuteQuery(ctx, "SELECT * FROM "+tableName, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", tableName, err)
	}
	return data, nil
}
