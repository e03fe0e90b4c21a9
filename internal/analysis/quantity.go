// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import (
	"math"

	"github.com/tomtom215/salesreport/internal/table"
)

// QuantityStrategy summarizes units sold per sale.
type QuantityStrategy struct{}

func (QuantityStrategy) Name() string              { return "Quantity Analysis Strategy" }
func (QuantityStrategy) Kind() Kind                { return Quantity }
func (QuantityStrategy) RequiredColumns() []string { return []string{"quantity"} }

func (s QuantityStrategy) Analyze(t *table.Table) (Metrics, error) {
	if err := requireColumns(t, "quantity", s.RequiredColumns()...); err != nil {
		return nil, err
	}
	qty, err := t.Floats("quantity")
	if err != nil {
		return nil, err
	}

	m := Metrics{
		"strategy":                  s.Name(),
		"total_items_sold":          int64(math.Round(sum(qty))),
		"average_quantity_per_sale": mean(qty),
		"median_quantity_per_sale":  median(qty),
		"min_quantity":              int64(minOf(qty)),
		"max_quantity":              int64(maxOf(qty)),
		"quantity_std":              stddev(qty),
		"total_transactions":        t.Len(),
	}
	if t.Len() > 0 {
		m["quantity_distribution"] = map[string]any{
			"single_item_sales":  countIf(qty, func(q float64) bool { return q == 1 }),
			"bulk_sales_5_plus":  countIf(qty, func(q float64) bool { return q >= 5 }),
			"bulk_sales_10_plus": countIf(qty, func(q float64) bool { return q >= 10 }),
		}
	}
	return m, nil
}
