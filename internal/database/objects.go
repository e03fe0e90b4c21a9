// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/database/query"
	"github.com/tomtom215/salesreport/internal/table"
)

// Report defaults.
const (
	DefaultLifetimeMonths = 12
	DefaultReportDays     = 30
)

// Objects are the reports served by the schema's view and indexes, plus the
// lifetime value and sales report calculations.
type Objects struct {
	q   Querier
	now func() time.Time
}

// NewObjects creates the object reports over q.
func NewObjects(q Querier) *Objects {
	return &Objects{q: q, now: time.Now}
}

// CustomerLifetimeValue sums what a customer spent over the last months
// months. A customer without sales is worth 0.
func (o *Objects) CustomerLifetimeValue(ctx context.Context, customerID int64, months int) (float64, error) {
	if months <= 0 {
		months = DefaultLifetimeMonths
	}
	t, err := o.q.ExecuteQuery(ctx, `SELECT COALESCE(SUM(total_price), 0) AS lifetime_value
FROM sales
WHERE customer_id = :customer_id
  AND sale_date >= :since`, map[string]any{
		"customer_id": customerID,
		"since":       startOfDay(o.now()).AddDate(0, -months, 0),
	})
	if err != nil {
		return 0, fmt.Errorf("customer lifetime value: %w", err)
	}
	v, _ := t.Value(0, "lifetime_value")
	if v == nil {
		return 0, nil
	}
	f, ok := table.AsFloat(v)
	if !ok {
		return 0, apperrors.Preconditionf("customer lifetime value: non-numeric result %v", v)
	}
	return f, nil
}

// ReportOptions selects the sales report window. Nil dates default to the
// last DefaultReportDays days; End is inclusive.
type ReportOptions struct {
	Start          *time.Time
	End            *time.Time
	CategoryID     *int64
	IncludeDetails bool
}

// SalesReport is a summary row plus optional per-product details.
type SalesReport struct {
	Start   time.Time      `json:"start"`
	End     time.Time      `json:"end"`
	Summary map[string]any `json:"summary"`
	Details *table.Table   `json:"details,omitempty"`
}

// SalesReport summarizes sales in a window, optionally for one category.
func (o *Objects) SalesReport(ctx context.Context, opts ReportOptions) (*SalesReport, error) {
	today := startOfDay(o.now())
	from, until := dateRange(opts.Start, opts.End, today, today.AddDate(0, 0, -DefaultReportDays))
	if !from.Before(until) {
		return nil, apperrors.Preconditionf("sales report: start %s is after end", from.Format(time.DateOnly))
	}

	filter := query.NewWhereBuilder().AddWindow("s.sale_date", from, until)
	query.AddEquals(filter, "p.category_id", opts.CategoryID)

	summary, err := o.run(ctx, query.NewBuilder().
		Select(
			"COUNT(s.sale_id) AS total_transactions",
			"COALESCE(SUM(s.total_price), 0) AS total_revenue",
			"AVG(s.total_price) AS avg_transaction_value",
			"COALESCE(SUM(s.quantity), 0) AS total_quantity",
			"COUNT(DISTINCT s.customer_id) AS unique_customers",
		).
		FromTable("sales s").
		InnerJoin("products p", "s.product_id = p.product_id").
		WhereClause(filter))
	if err != nil {
		return nil, fmt.Errorf("sales report summary: %w", err)
	}

	report := &SalesReport{
		Start:   from,
		End:     until.AddDate(0, 0, -1),
		Summary: summary.Record(0),
	}
	if report.Summary == nil {
		report.Summary = map[string]any{}
	}
	if !opts.IncludeDetails {
		return report, nil
	}

	details, err := o.run(ctx, query.NewBuilder().
		Select("p.product_id", "p.product_name", "c.category_name",
			"COUNT(s.sale_id) AS transactions",
			"SUM(s.quantity) AS units_sold",
			"SUM(s.total_price) AS revenue",
			"AVG(s.total_price) AS avg_transaction_value",
			"SUM(s.discount) AS total_discounts",
		).
		FromTable("sales s").
		InnerJoin("products p", "s.product_id = p.product_id").
		InnerJoin("categories c", "p.category_id = c.category_id").
		WhereClause(filter).
		GroupBy("p.product_id", "p.product_name", "c.category_name").
		OrderBy("revenue", "DESC").
		OrderBy("p.product_id", ""))
	if err != nil {
		return nil, fmt.Errorf("sales report details: %w", err)
	}
	report.Details = details
	return report, nil
}

// PurchaseHistory reads the purchase history view, biggest spenders first. A
// nil customerID returns every customer.
func (o *Objects) PurchaseHistory(ctx context.Context, customerID *int64) (*table.Table, error) {
	return o.run(ctx, query.NewBuilder().
		Select("*").
		FromTable(PurchaseHistoryView).
		WhereClause(query.AddEquals(query.NewWhereBuilder(), "customer_id", customerID)).
		OrderBy("total_spent", "DESC").
		OrderBy("customer_id", ""))
}

func (o *Objects) run(ctx context.Context, b *query.Builder) (*table.Table, error) {
	q, args, err := b.BuildWithArgs()
	if err != nil {
		return nil, err
	}
	return o.q.Query(ctx, q, args...)
}

// ExplainPlans returns the query plans for the three indexed access paths:
// recent sales of a few products, customers of a city and products of a
// category.
func (o *Objects) ExplainPlans(ctx context.Context) (map[string]*table.Table, error) {
	d := o.q.Dialect()
	since := startOfDay(o.now()).AddDate(0, 0, -30).Format(time.DateOnly)

	plans := []struct{ key, stmt string }{
		{"sales_index_plan", fmt.Sprintf(
			"SELECT * FROM sales WHERE sale_date >= '%s' AND product_id IN (1, 2, 3)", since)},
		{"customer_index_plan", "SELECT * FROM customers WHERE city_id = 1 ORDER BY customer_id"},
		{"product_index_plan", "SELECT * FROM products WHERE category_id = 1"},
	}

	out := make(map[string]*table.Table, len(plans))
	for _, p := range plans {
		t, err := o.q.ExecuteQuery(ctx, d.Explain(p.stmt), nil)
		if err != nil {
			return nil, fmt.Errorf("explain %s: %w", p.key, err)
		}
		out[p.key] = t
	}
	return out, nil
}
