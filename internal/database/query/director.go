// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package query

// DefaultTopCustomers is the row count callers use for TopCustomers when the
// user gives none.
const DefaultTopCustomers = 10

// Director renders canned report queries with a shared builder.
type Director struct {
	builder *Builder
}

// NewDirector wraps b. A nil builder gets a fresh one.
func NewDirector(b *Builder) *Director {
	if b == nil {
		b = NewBuilder()
	}
	return &Director{builder: b}
}

// SalesSummaryByCategory returns sales count, revenue and average sale per
// category, highest revenue first.
func (d *Director) SalesSummaryByCategory() (string, error) {
	return d.builder.Reset().
		Select(
			"c.category_name",
			"COUNT(s.sale_id) as total_sales",
			"SUM(s.total_price) as total_revenue",
			"AVG(s.total_price) as avg_sale_amount",
		).
		FromTable("sales s").
		InnerJoin("products p", "s.product_id = p.product_id").
		InnerJoin("categories c", "p.category_id = c.category_id").
		GroupBy("c.category_name").
		OrderBy("total_revenue", "DESC").
		Build()
}

// TopCustomers returns the limit customers with the highest total spend.
func (d *Director) TopCustomers(limit int) (string, error) {
	return d.builder.Reset().
		Select(
			"CONCAT(c.first_name, ' ', c.last_name) as customer_name",
			"COUNT(s.sale_id) as total_purchases",
			"SUM(s.total_price) as total_spent",
		).
		FromTable("sales s").
		InnerJoin("customers c", "s.customer_id = c.customer_id").
		GroupBy("c.customer_id", "c.first_name", "c.last_name").
		OrderBy("total_spent", "DESC").
		Limit(limit).
		Build()
}

// MonthlySalesTrend returns per-month sales for year. The year is bound, so
// the result carries one argument.
func (d *Director) MonthlySalesTrend(year int) (string, []any, error) {
	return d.builder.Reset().
		Select(
			"MONTH(sale_date) as month",
			"MONTHNAME(sale_date) as month_name",
			"COUNT(sale_id) as total_sales",
			"SUM(total_price) as total_revenue",
		).
		FromTable("sales").
		WhereArg("YEAR(sale_date) = ?", year).
		GroupBy("MONTH(sale_date)", "MONTHNAME(sale_date)").
		OrderBy("month", "ASC").
		BuildWithArgs()
}
