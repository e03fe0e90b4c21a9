// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/salesreport/internal/database/query"
	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/table"
)

// DefaultTopProducts is the TopProducts limit RunAll uses.
const DefaultTopProducts = 5

// Examples are everyday reports built from the join and select helpers.
type Examples struct {
	q   Querier
	now func() time.Time
}

// NewExamples creates the example reports over q.
func NewExamples(q Querier) *Examples {
	return &Examples{q: q, now: time.Now}
}

// SalesSummary returns sales count, revenue and average sale per category.
func (e *Examples) SalesSummary(ctx context.Context) (*table.Table, error) {
	return runBuilt(ctx, e.q, JoinOptions{
		MainTable: "sales s",
		Joins: []query.Join{
			{Kind: query.JoinInner, Table: "products p", On: "s.product_id = p.product_id"},
			{Kind: query.JoinInner, Table: "categories c", On: "p.category_id = c.category_id"},
		},
		Columns: []string{
			"c.category_name",
			"COUNT(s.sale_id) AS total_sales",
			"SUM(s.total_price) AS total_revenue",
			"AVG(s.total_price) AS avg_sale_amount",
		},
		GroupBy: []string{"c.category_id", "c.category_name"},
		OrderBy: []query.Order{{Field: "total_revenue", Direction: "DESC"}},
	}.build)
}

// TopProducts returns the best selling products by revenue.
func (e *Examples) TopProducts(ctx context.Context, limit int) (*table.Table, error) {
	if limit <= 0 {
		limit = DefaultTopProducts
	}
	return runBuilt(ctx, e.q, JoinOptions{
		MainTable: "sales s",
		Joins: []query.Join{
			{Kind: query.JoinInner, Table: "products p", On: "s.product_id = p.product_id"},
		},
		Columns: []string{
			"p.product_name",
			"SUM(s.quantity) AS total_quantity",
			"SUM(s.total_price) AS total_revenue",
			"COUNT(s.sale_id) AS sales_count",
		},
		GroupBy: []string{"p.product_id", "p.product_name"},
		OrderBy: []query.Order{{Field: "total_revenue", Direction: "DESC"}},
		Limit:   limit,
	}.build)
}

// EmployeePerformance returns sales totals per salesperson.
func (e *Examples) EmployeePerformance(ctx context.Context) (*table.Table, error) {
	return runBuilt(ctx, e.q, JoinOptions{
		MainTable: "sales s",
		Joins: []query.Join{
			{Kind: query.JoinInner, Table: "employees e", On: "s.sales_person_id = e.employee_id"},
		},
		Columns: []string{
			"CONCAT(e.first_name, ' ', e.last_name) AS employee_name",
			"COUNT(s.sale_id) AS total_sales",
			"SUM(s.total_price) AS total_revenue",
			"AVG(s.total_price) AS avg_sale_amount",
		},
		GroupBy: []string{"e.employee_id", "e.first_name", "e.last_name"},
		OrderBy: []query.Order{{Field: "total_revenue", Direction: "DESC"}},
	}.build)
}

// MonthlySalesTrend returns per-month sales for year. A zero year means the
// current one.
func (e *Examples) MonthlySalesTrend(ctx context.Context, year int) (*table.Table, error) {
	if year == 0 {
		year = e.now().Year()
	}
	d := e.q.Dialect()
	q := fmt.Sprintf(`SELECT
	%[1]s AS month,
	%[2]s AS month_name,
	COUNT(sale_id) AS total_sales,
	SUM(total_price) AS total_revenue,
	AVG(total_price) AS avg_sale_amount
FROM sales
WHERE sale_date >= :year_start AND sale_date < :year_end
GROUP BY %[1]s, %[2]s
ORDER BY month`, d.Month("sale_date"), d.MonthName("sale_date"))

	return e.q.ExecuteQuery(ctx, q, map[string]any{
		"year_start": time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		"year_end":   time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
}

// CustomerAnalysis returns purchase behaviour per customer over the last year.
func (e *Examples) CustomerAnalysis(ctx context.Context) (*table.Table, error) {
	since := startOfDay(e.now()).AddDate(-1, 0, 0)
	return runBuilt(ctx, e.q, JoinOptions{
		MainTable: "sales s",
		Joins: []query.Join{
			{Kind: query.JoinInner, Table: "customers c", On: "s.customer_id = c.customer_id"},
			{Kind: query.JoinInner, Table: "cities ci", On: "c.city_id = ci.city_id"},
		},
		Columns: []string{
			"CONCAT(c.first_name, ' ', c.last_name) AS customer_name",
			"ci.city_name",
			"COUNT(s.sale_id) AS total_purchases",
			"SUM(s.total_price) AS total_spent",
			"AVG(s.total_price) AS avg_purchase_amount",
			"MAX(s.sale_date) AS last_purchase_date",
		},
		Where:   "s.sale_date >= ?",
		Args:    []any{since},
		GroupBy: []string{"c.customer_id", "c.first_name", "c.last_name", "ci.city_name"},
		OrderBy: []query.Order{{Field: "total_spent", Direction: "DESC"}},
	}.build)
}

// CategoryPerformance returns catalogue size and sales per category,
// including categories with no sales.
func (e *Examples) CategoryPerformance(ctx context.Context) (*table.Table, error) {
	return e.q.ExecuteQuery(ctx, `SELECT
	c.category_name,
	COUNT(DISTINCT p.product_id) AS products_in_category,
	COUNT(s.sale_id) AS total_sales,
	SUM(s.quantity) AS total_quantity_sold,
	SUM(s.total_price) AS total_revenue,
	AVG(s.total_price) AS avg_sale_amount,
	MAX(s.sale_date) AS last_sale_date
FROM categories c
LEFT JOIN products p ON c.category_id = p.category_id
LEFT JOIN sales s ON p.product_id = s.product_id
GROUP BY c.category_id, c.category_name
ORDER BY total_revenue DESC`, nil)
}

// RunAll runs every example in order and collects the results by name,
// starting with "connection_test". The first failure stops the run and is
// reported under "error".
func (e *Examples) RunAll(ctx context.Context) map[string]any {
	results := make(map[string]any)
	results["connection_test"] = testConnection(ctx, e.q)

	steps := []struct {
		name string
		run  func(context.Context) (*table.Table, error)
	}{
		{"sales_summary", e.SalesSummary},
		{"top_products", func(ctx context.Context) (*table.Table, error) { return e.TopProducts(ctx, DefaultTopProducts) }},
		{"employee_performance", e.EmployeePerformance},
		{"monthly_trend", func(ctx context.Context) (*table.Table, error) { return e.MonthlySalesTrend(ctx, 0) }},
		{"customer_analysis", e.CustomerAnalysis},
		{"category_performance", e.CategoryPerformance},
	}
	for _, step := range steps {
		t, err := step.run(ctx)
		if err != nil {
			logging.Error().Err(err).Str("example", step.name).Msg("Example query failed")
			results["error"] = err.Error()
			return results
		}
		results[step.name] = t
	}
	return results
}

// testConnection reports whether SELECT 1 round-trips through q.
func testConnection(ctx context.Context, q Querier) bool {
	t, err := q.ExecuteQuery(ctx, "SELECT 1 AS test", nil)
	if err != nil || t.Len() == 0 {
		return false
	}
	v, _ := t.Value(0, "test")
	n, ok := table.AsInt(v)
	return ok && n == 1
}
