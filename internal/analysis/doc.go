// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package analysis turns sales tables into metrics records.

# Strategies

A Strategy computes one family of metrics over a *table.Table:

  - Revenue (revenue): totals, averages, spread and quartiles of total_price
  - Quantity (quantity): units sold and the single/bulk distribution
  - CustomerBehavior (customer_behavior): per-customer spend, repeat rate and
    value/frequency segments
  - ProductPerformance (product_performance): per-product revenue and tiers

Every result contains "strategy" (the strategy's display name) and a count
field. Sub-records such as "revenue_quartiles" are omitted when there is not
enough data; callers treat their absence as "insufficient data".

A table without a required column fails with *MissingColumnError, which wraps
apperrors.ErrMissingColumn:

	m, err := analysis.RevenueStrategy{}.Analyze(t)
	if errors.Is(err, apperrors.ErrPrecondition) { ... }

# Statistics

Quantiles use linear interpolation between closest ranks and the standard
deviation is the sample deviation (n-1). Null cells are skipped. Values that
are undefined for the input (the mean of nothing, the deviation of one value)
are reported as 0.

# Context and Factory

Context holds the current strategy and an optional Source used to fetch the
table when the caller has none:

	c := analysis.NewContext(analysis.RevenueStrategy{}, db)
	m, err := c.PerformAnalysis(ctx, nil) // SELECT * FROM sales
	all, err := c.CompareStrategies(ctx, strategies, nil)

Factory maps keys to strategies in registration order:

	s, err := analysis.DefaultFactory().CreateStrategy("quantity")
*/
package analysis
