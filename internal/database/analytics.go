// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
analytics.go - Window Function Reports

The Analytics reports combine CTE aggregation with window functions:

  - SalesPerformance ranks salespeople within product categories
  - CustomerSegmentation scores customers by recency, frequency and spend
  - ProductTrends tracks product revenue across daily, weekly or monthly buckets
  - Dashboard returns daily trends and geographic performance together

Date windows are computed here and bound as parameters. Only the small set of
expressions that differ between engines (date differences, bucket labels) comes
from the Dialect.
*/

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/table"
)

// Default report windows.
const (
	DefaultSegmentationMonths = 12
	DefaultDashboardDays      = 90
	productTrendMonths        = 18
)

// Analytics runs the window function reports.
type Analytics struct {
	q   Querier
	now func() time.Time
}

// NewAnalytics creates the reports over q, which may be a *DB or a wrapped
// *Executor.
func NewAnalytics(q Querier) *Analytics {
	return &Analytics{q: q, now: time.Now}
}

func (a *Analytics) today() time.Time {
	return startOfDay(a.now())
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dateRange resolves optional bounds into [from, until). The end date is
// inclusive, so until is the midnight after it.
func dateRange(start, end *time.Time, today time.Time, defaultFrom time.Time) (from, until time.Time) {
	from = defaultFrom
	if start != nil {
		from = startOfDay(*start)
	}
	last := today
	if end != nil {
		last = startOfDay(*end)
	}
	return from, last.AddDate(0, 0, 1)
}

// SalesPerformance ranks each salesperson per category by revenue. Without
// bounds it covers the last year up to and including today.
func (a *Analytics) SalesPerformance(ctx context.Context, start, end *time.Time) (*table.Table, error) {
	today := a.today()
	from, until := dateRange(start, end, today, today.AddDate(-1, 0, 0))

	q := `WITH sales_summary AS (
	SELECT
		e.employee_id,
		CONCAT(e.first_name, ' ', e.last_name) AS salesperson_name,
		c.category_name,
		COUNT(s.sale_id) AS total_transactions,
		SUM(s.quantity) AS total_quantity_sold,
		SUM(s.total_price) AS total_revenue,
		AVG(s.total_price) AS avg_transaction_value,
		SUM(s.discount) AS total_discounts_given
	FROM sales s
	INNER JOIN employees e ON s.sales_person_id = e.employee_id
	INNER JOIN products p ON s.product_id = p.product_id
	INNER JOIN categories c ON p.category_id = c.category_id
	WHERE s.sale_date >= :start_date
	  AND s.sale_date < :end_date
	GROUP BY e.employee_id, e.first_name, e.last_name, c.category_id, c.category_name
),
performance_metrics AS (
	SELECT
		employee_id,
		salesperson_name,
		category_name,
		total_transactions,
		total_quantity_sold,
		total_revenue,
		avg_transaction_value,
		total_discounts_given,
		ROW_NUMBER() OVER (PARTITION BY category_name ORDER BY total_revenue DESC) AS revenue_rank_in_category,
		RANK() OVER (ORDER BY total_revenue DESC) AS overall_revenue_rank,
		DENSE_RANK() OVER (PARTITION BY category_name ORDER BY total_transactions DESC) AS transactions_rank_in_category,
		PERCENT_RANK() OVER (ORDER BY total_revenue) AS revenue_percentile,
		SUM(total_revenue) OVER (
			PARTITION BY employee_id
			ORDER BY total_revenue DESC
			ROWS UNBOUNDED PRECEDING
		) AS cumulative_revenue,
		AVG(total_revenue) OVER (PARTITION BY category_name) AS category_avg_revenue
	FROM sales_summary
)
SELECT
	pm.*,
	CASE
		WHEN pm.total_revenue > pm.category_avg_revenue THEN 'Above Average'
		WHEN pm.total_revenue = pm.category_avg_revenue THEN 'Average'
		ELSE 'Below Average'
	END AS performance_category,
	ROUND(pm.total_revenue / NULLIF(pm.total_transactions, 0), 2) AS revenue_per_transaction,
	ROUND(1.0 * pm.total_quantity_sold / NULLIF(pm.total_transactions, 0), 2) AS avg_items_per_transaction,
	ROUND((pm.total_discounts_given / NULLIF(pm.total_revenue, 0)) * 100, 2) AS discount_percentage
FROM performance_metrics pm
ORDER BY pm.overall_revenue_rank, pm.category_name`

	return a.run(ctx, "sales_performance", q, map[string]any{
		"start_date": from,
		"end_date":   until,
	})
}

// CustomerSegmentation scores customers active in the last months months with
// NTILE quintiles and assigns each an RFM segment and a business segment.
// months <= 0 uses DefaultSegmentationMonths.
func (a *Analytics) CustomerSegmentation(ctx context.Context, months int) (*table.Table, error) {
	if months <= 0 {
		months = DefaultSegmentationMonths
	}
	d := a.q.Dialect()
	today := a.today()

	q := fmt.Sprintf(`WITH customer_metrics AS (
	SELECT
		c.customer_id,
		CONCAT(c.first_name, ' ', c.last_name) AS customer_name,
		ci.city_name,
		co.country_name,
		%[1]s AS days_since_last_purchase,
		COUNT(DISTINCT s.sale_id) AS total_purchases,
		COUNT(DISTINCT s.product_id) AS unique_products_bought,
		COUNT(DISTINCT %[2]s) AS shopping_days,
		SUM(s.total_price) AS total_spent,
		AVG(s.total_price) AS avg_purchase_value,
		SUM(s.quantity) AS total_items_bought,
		MIN(s.sale_date) AS first_purchase_date,
		MAX(s.sale_date) AS last_purchase_date,
		%[3]s AS customer_lifetime_days
	FROM customers c
	INNER JOIN sales s ON c.customer_id = s.customer_id
	INNER JOIN cities ci ON c.city_id = ci.city_id
	INNER JOIN countries co ON ci.country_id = co.country_id
	WHERE s.sale_date >= :since
	GROUP BY c.customer_id, c.first_name, c.last_name, ci.city_name, co.country_name
),
customer_scores AS (
	SELECT
		cm.*,
		NTILE(5) OVER (ORDER BY days_since_last_purchase) AS recency_score,
		NTILE(5) OVER (ORDER BY total_purchases DESC) AS frequency_score,
		NTILE(5) OVER (ORDER BY total_spent DESC) AS monetary_score,
		PERCENT_RANK() OVER (ORDER BY total_spent DESC) AS spending_percentile,
		PERCENT_RANK() OVER (ORDER BY total_purchases DESC) AS frequency_percentile,
		AVG(total_spent) OVER () AS overall_avg_spent,
		AVG(total_purchases) OVER () AS overall_avg_purchases,
		CASE
			WHEN customer_lifetime_days > 0
			THEN ROUND(total_spent / (customer_lifetime_days / 30.44), 2)
			ELSE total_spent
		END AS monthly_value,
		ROW_NUMBER() OVER (PARTITION BY country_name ORDER BY total_spent DESC) AS country_spending_rank,
		ROW_NUMBER() OVER (PARTITION BY city_name ORDER BY total_spent DESC) AS city_spending_rank
	FROM customer_metrics cm
),
segmented_customers AS (
	SELECT
		cs.*,
		CONCAT(6 - recency_score, frequency_score, monetary_score) AS rfm_segment,
		CASE
			WHEN recency_score >= 4 AND frequency_score >= 4 AND monetary_score >= 4 THEN 'Champions'
			WHEN recency_score >= 3 AND frequency_score >= 3 AND monetary_score >= 4 THEN 'Loyal Customers'
			WHEN recency_score >= 4 AND frequency_score <= 2 AND monetary_score >= 3 THEN 'Potential Loyalists'
			WHEN recency_score >= 4 AND frequency_score <= 2 AND monetary_score <= 2 THEN 'New Customers'
			WHEN recency_score <= 2 AND frequency_score >= 3 AND monetary_score >= 3 THEN 'At Risk'
			WHEN recency_score <= 2 AND frequency_score >= 4 AND monetary_score >= 4 THEN 'Cannot Lose Them'
			WHEN recency_score <= 3 AND frequency_score <= 2 AND monetary_score <= 2 THEN 'Hibernating'
			ELSE 'Others'
		END AS customer_segment,
		ROUND((frequency_score * 0.3 + monetary_score * 0.5 + (6 - recency_score) * 0.2) / 5 * 100, 2) AS customer_value_index
	FROM customer_scores cs
)
SELECT
	sc.*,
	COUNT(*) OVER (PARTITION BY customer_segment) AS segment_size,
	AVG(total_spent) OVER (PARTITION BY customer_segment) AS segment_avg_spent,
	AVG(customer_value_index) OVER (PARTITION BY customer_segment) AS segment_avg_value_index
FROM segmented_customers sc
ORDER BY customer_value_index DESC, total_spent DESC`,
		d.DaysBetween(d.Today(), "MAX(s.sale_date)"),
		d.DateOf("s.sale_date"),
		d.DaysBetween("MAX(s.sale_date)", "MIN(s.sale_date)"),
	)

	return a.run(ctx, "customer_segmentation", q, map[string]any{
		"since": today.AddDate(0, -months, 0),
	})
}

// ProductTrends aggregates product sales per period over the last 18 months
// and compares each period with its neighbours. A nil categoryID covers every
// category.
func (a *Analytics) ProductTrends(ctx context.Context, categoryID *int64, period Period) (*table.Table, error) {
	d := a.q.Dialect()
	bucket := d.Bucket(period, "s.sale_date")
	params := map[string]any{
		"since": a.today().AddDate(0, -productTrendMonths, 0),
	}

	categoryFilter := ""
	if categoryID != nil {
		categoryFilter = "\n\t  AND c.category_id = :category_id"
		params["category_id"] = *categoryID
	}

	q := fmt.Sprintf(`WITH time_series_sales AS (
	SELECT
		p.product_id,
		p.product_name,
		c.category_name,
		p.price AS current_price,
		%[1]s AS time_period,
		COUNT(s.sale_id) AS transactions,
		SUM(s.quantity) AS units_sold,
		SUM(s.total_price) AS revenue,
		AVG(s.total_price) AS avg_transaction_value,
		COUNT(DISTINCT s.customer_id) AS unique_customers,
		SUM(s.discount) AS total_discounts
	FROM products p
	INNER JOIN categories c ON p.category_id = c.category_id
	INNER JOIN sales s ON p.product_id = s.product_id
	WHERE s.sale_date >= :since%[2]s
	GROUP BY p.product_id, p.product_name, c.category_name, p.price, %[1]s
),
performance_trends AS (
	SELECT
		tss.*,
		LAG(revenue, 1) OVER (PARTITION BY product_id ORDER BY time_period) AS previous_period_revenue,
		LAG(units_sold, 1) OVER (PARTITION BY product_id ORDER BY time_period) AS previous_period_units,
		LEAD(revenue, 1) OVER (PARTITION BY product_id ORDER BY time_period) AS next_period_revenue,
		AVG(revenue) OVER (PARTITION BY product_id ORDER BY time_period ROWS 2 PRECEDING) AS revenue_3period_ma,
		AVG(units_sold) OVER (PARTITION BY product_id ORDER BY time_period ROWS 2 PRECEDING) AS units_3period_ma,
		SUM(revenue) OVER (PARTITION BY product_id ORDER BY time_period ROWS UNBOUNDED PRECEDING) AS cumulative_revenue,
		ROW_NUMBER() OVER (PARTITION BY category_name, time_period ORDER BY revenue DESC) AS category_revenue_rank,
		RANK() OVER (PARTITION BY time_period ORDER BY revenue DESC) AS overall_revenue_rank,
		PERCENT_RANK() OVER (PARTITION BY category_name, time_period ORDER BY revenue) AS category_performance_percentile
	FROM time_series_sales tss
)
SELECT
	pt.*,
	CASE
		WHEN previous_period_revenue IS NOT NULL AND previous_period_revenue > 0
		THEN ROUND(((revenue - previous_period_revenue) / previous_period_revenue) * 100, 2)
		ELSE NULL
	END AS revenue_growth_rate,
	CASE
		WHEN previous_period_units IS NOT NULL AND previous_period_units > 0
		THEN ROUND(((units_sold - previous_period_units) * 1.0 / previous_period_units) * 100, 2)
		ELSE NULL
	END AS units_growth_rate,
	CASE
		WHEN revenue > revenue_3period_ma THEN 'Above Trend'
		WHEN revenue < revenue_3period_ma THEN 'Below Trend'
		ELSE 'On Trend'
	END AS revenue_trend_indicator,
	CASE
		WHEN category_performance_percentile >= 0.8 THEN 'Top Performer'
		WHEN category_performance_percentile >= 0.6 THEN 'Good Performer'
		WHEN category_performance_percentile >= 0.4 THEN 'Average Performer'
		WHEN category_performance_percentile >= 0.2 THEN 'Poor Performer'
		ELSE 'Bottom Performer'
	END AS performance_class,
	ROUND(revenue / NULLIF(unique_customers, 0), 2) AS revenue_per_customer,
	ROUND((total_discounts / NULLIF(revenue, 0)) * 100, 2) AS discount_rate_percent
FROM performance_trends pt
ORDER BY pt.product_id, pt.time_period`, bucket, categoryFilter)

	return a.run(ctx, "product_trends", q, params)
}

// Dashboard returns the daily sales trend and the geographic breakdown for
// the last days days, keyed "sales_trends" and "geographic_performance".
func (a *Analytics) Dashboard(ctx context.Context, days int) (map[string]*table.Table, error) {
	if days <= 0 {
		days = DefaultDashboardDays
	}
	d := a.q.Dialect()
	params := map[string]any{"since": a.today().AddDate(0, 0, -days)}
	saleDay := d.DateOf("s.sale_date")

	trends := fmt.Sprintf(`WITH daily_sales AS (
	SELECT
		%[1]s AS sale_date,
		COUNT(s.sale_id) AS daily_transactions,
		SUM(s.total_price) AS daily_revenue,
		SUM(s.quantity) AS daily_units,
		COUNT(DISTINCT s.customer_id) AS daily_customers,
		AVG(s.total_price) AS daily_avg_transaction
	FROM sales s
	WHERE s.sale_date >= :since
	GROUP BY %[1]s
)
SELECT
	ds.*,
	AVG(daily_revenue) OVER (ORDER BY sale_date ROWS 6 PRECEDING) AS revenue_7day_ma,
	AVG(daily_transactions) OVER (ORDER BY sale_date ROWS 6 PRECEDING) AS transactions_7day_ma,
	LAG(daily_revenue, 7) OVER (ORDER BY sale_date) AS revenue_7days_ago,
	ROW_NUMBER() OVER (ORDER BY daily_revenue DESC) AS revenue_rank
FROM daily_sales ds
ORDER BY sale_date`, saleDay)

	geographic := `WITH geo_performance AS (
	SELECT
		co.country_name,
		ci.city_name,
		COUNT(s.sale_id) AS total_sales,
		SUM(s.total_price) AS total_revenue,
		COUNT(DISTINCT s.customer_id) AS unique_customers,
		AVG(s.total_price) AS avg_transaction_value
	FROM sales s
	INNER JOIN customers c ON s.customer_id = c.customer_id
	INNER JOIN cities ci ON c.city_id = ci.city_id
	INNER JOIN countries co ON ci.country_id = co.country_id
	WHERE s.sale_date >= :since
	GROUP BY co.country_name, ci.city_name
)
SELECT
	gp.*,
	RANK() OVER (ORDER BY total_revenue DESC) AS revenue_rank,
	PERCENT_RANK() OVER (ORDER BY total_revenue) AS revenue_percentile,
	ROUND(total_revenue / NULLIF(unique_customers, 0), 2) AS revenue_per_customer
FROM geo_performance gp
ORDER BY total_revenue DESC`

	out := make(map[string]*table.Table, 2)
	for _, part := range []struct{ key, q string }{
		{"sales_trends", trends},
		{"geographic_performance", geographic},
	} {
		t, err := a.run(ctx, part.key, part.q, params)
		if err != nil {
			return nil, err
		}
		out[part.key] = t
	}
	return out, nil
}

func (a *Analytics) run(ctx context.Context, report, q string, params map[string]any) (*table.Table, error) {
	t, err := a.q.ExecuteQuery(ctx, q, params)
	if err != nil {
		return nil, fmt.Errorf("%s report: %w", report, err)
	}
	logging.Debug().Str("report", report).Str("shape", t.Shape()).Msg("Report complete")
	return t, nil
}
