// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import "github.com/tomtom215/salesreport/internal/table"

// RevenueStrategy summarizes total_price.
type RevenueStrategy struct{}

func (RevenueStrategy) Name() string              { return "Revenue Analysis Strategy" }
func (RevenueStrategy) Kind() Kind                { return Revenue }
func (RevenueStrategy) RequiredColumns() []string { return []string{"total_price"} }

func (s RevenueStrategy) Analyze(t *table.Table) (Metrics, error) {
	if err := requireColumns(t, "revenue", s.RequiredColumns()...); err != nil {
		return nil, err
	}
	prices, err := t.Floats("total_price")
	if err != nil {
		return nil, err
	}

	m := Metrics{
		"strategy":            s.Name(),
		"total_revenue":       sum(prices),
		"average_sale_amount": mean(prices),
		"median_sale_amount":  median(prices),
		"min_sale_amount":     minOf(prices),
		"max_sale_amount":     maxOf(prices),
		"revenue_std":         stddev(prices),
		"total_transactions":  t.Len(),
	}
	if t.Len() > 0 {
		m["revenue_quartiles"] = map[string]any{
			"q1": quantile(prices, 0.25),
			"q2": quantile(prices, 0.5),
			"q3": quantile(prices, 0.75),
		}
	}
	return m, nil
}
