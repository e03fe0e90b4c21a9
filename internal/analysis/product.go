// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import "github.com/tomtom215/salesreport/internal/table"

// ProductPerformanceStrategy ranks products by revenue.
type ProductPerformanceStrategy struct{}

func (ProductPerformanceStrategy) Name() string { return "Product Performance Analysis Strategy" }
func (ProductPerformanceStrategy) Kind() Kind   { return ProductPerformance }
func (ProductPerformanceStrategy) RequiredColumns() []string {
	return []string{"product_id", "total_price", "quantity"}
}

type productStats struct {
	revenue  float64
	quantity float64
}

func (s ProductPerformanceStrategy) Analyze(t *table.Table) (Metrics, error) {
	if err := requireColumns(t, "product performance", s.RequiredColumns()...); err != nil {
		return nil, err
	}

	idIdx := t.ColumnIndex("product_id")
	priceIdx := t.ColumnIndex("total_price")
	qtyIdx := t.ColumnIndex("quantity")

	products := newGrouped[productStats]()
	for i, row := range t.Rows {
		if row[idIdx] == nil {
			continue
		}
		p := products.get(groupKey(row[idIdx]))

		price, ok, err := numericCell(row[priceIdx], "total_price", i)
		if err != nil {
			return nil, err
		}
		if ok {
			p.revenue += price
		}
		qty, ok, err := numericCell(row[qtyIdx], "quantity", i)
		if err != nil {
			return nil, err
		}
		if ok {
			p.quantity += qty
		}
	}

	revenue := products.floats(func(p *productStats) float64 { return p.revenue })
	quantity := products.floats(func(p *productStats) float64 { return p.quantity })
	q20 := quantile(revenue, 0.2)
	q40 := quantile(revenue, 0.4)
	q80 := quantile(revenue, 0.8)

	m := Metrics{
		"strategy":                       s.Name(),
		"unique_products_sold":           products.size(),
		"avg_revenue_per_product":        mean(revenue),
		"avg_quantity_per_product":       mean(quantity),
		"top_performing_products_count":  countIf(revenue, func(v float64) bool { return v > q80 }),
		"underperforming_products_count": countIf(revenue, func(v float64) bool { return v < q20 }),
	}
	if products.size() > 0 {
		m["product_performance_tiers"] = map[string]any{
			"top_tier": countIf(revenue, func(v float64) bool { return v >= q80 }),
			"mid_tier": countIf(revenue, func(v float64) bool { return v >= q40 && v < q80 }),
			"low_tier": countIf(revenue, func(v float64) bool { return v < q40 }),
		}
	}
	return m, nil
}
