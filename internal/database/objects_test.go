// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/table"
)

func TestObjects_CustomerLifetimeValue(t *testing.T) {
	db := setupSeededDB(t)
	o := NewObjects(db)
	ctx := context.Background()

	got, err := o.CustomerLifetimeValue(ctx, 1, 24)
	if err != nil {
		t.Fatalf("CustomerLifetimeValue() error = %v", err)
	}

	tbl, err := db.ExecuteQuery(ctx, "SELECT COALESCE(SUM(total_price), 0) AS total FROM sales WHERE customer_id = :id", map[string]any{"id": int64(1)})
	if err != nil {
		t.Fatalf("reference query error = %v", err)
	}
	v, _ := tbl.Value(0, "total")
	want, _ := table.AsFloat(v)
	if math.Abs(got-want) > 0.005 {
		t.Errorf("CustomerLifetimeValue(1, 24 months) = %.2f, want %.2f", got, want)
	}

	none, err := o.CustomerLifetimeValue(ctx, 99999, 12)
	if err != nil {
		t.Fatalf("CustomerLifetimeValue(unknown) error = %v", err)
	}
	if none != 0 {
		t.Errorf("CustomerLifetimeValue(unknown) = %v, want 0", none)
	}
}

func TestObjects_SalesReport(t *testing.T) {
	o := NewObjects(setupSeededDB(t))
	ctx := context.Background()

	report, err := o.SalesReport(ctx, ReportOptions{IncludeDetails: true})
	if err != nil {
		t.Fatalf("SalesReport() error = %v", err)
	}
	for _, key := range []string{"total_transactions", "total_revenue", "avg_transaction_value", "total_quantity", "unique_customers"} {
		if _, ok := report.Summary[key]; !ok {
			t.Errorf("summary is missing %q", key)
		}
	}
	if days := report.End.Sub(report.Start).Hours() / 24; days != DefaultReportDays {
		t.Errorf("default window = %.0f days, want %d", days, DefaultReportDays)
	}
	if report.Details == nil {
		t.Fatal("details were requested but not returned")
	}
	requireColumns(t, report.Details, "product_id", "product_name", "category_name", "units_sold", "revenue")

	var detailTx int64
	for i := range report.Details.Rows {
		v, _ := report.Details.Value(i, "transactions")
		n, _ := table.AsInt(v)
		detailTx += n
	}
	total, _ := table.AsInt(report.Summary["total_transactions"])
	if detailTx != total {
		t.Errorf("detail transactions = %d, summary = %d", detailTx, total)
	}

	category := int64(3)
	filtered, err := o.SalesReport(ctx, ReportOptions{CategoryID: &category})
	if err != nil {
		t.Fatalf("SalesReport(category) error = %v", err)
	}
	if filtered.Details != nil {
		t.Error("details returned without IncludeDetails")
	}
	sub, _ := table.AsInt(filtered.Summary["total_transactions"])
	if sub > total {
		t.Errorf("category transactions %d exceed the total %d", sub, total)
	}
}

func TestObjects_SalesReport_InvertedRange(t *testing.T) {
	o := NewObjects(setupSeededDB(t))
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := o.SalesReport(context.Background(), ReportOptions{Start: &start, End: &end})
	if !errors.Is(err, apperrors.ErrPrecondition) {
		t.Fatalf("SalesReport(inverted) error = %v, want precondition error", err)
	}
}

func TestObjects_PurchaseHistory(t *testing.T) {
	o := NewObjects(setupSeededDB(t))
	ctx := context.Background()

	all, err := o.PurchaseHistory(ctx, nil)
	if err != nil {
		t.Fatalf("PurchaseHistory() error = %v", err)
	}
	if all.Len() != DefaultSeedCustomers {
		t.Errorf("PurchaseHistory() rows = %d, want %d", all.Len(), DefaultSeedCustomers)
	}
	requireColumns(t, all, "customer_id", "customer_name", "city_name", "country_name", "total_purchases", "total_spent", "last_purchase_date")

	id := int64(1)
	one, err := o.PurchaseHistory(ctx, &id)
	if err != nil {
		t.Fatalf("PurchaseHistory(1) error = %v", err)
	}
	if one.Len() != 1 {
		t.Fatalf("PurchaseHistory(1) rows = %d, want 1", one.Len())
	}
	if v, _ := one.Value(0, "customer_id"); v != int64(1) {
		t.Errorf("customer_id = %v, want 1", v)
	}
}

func TestObjects_ExplainPlans(t *testing.T) {
	o := NewObjects(setupSeededDB(t))

	plans, err := o.ExplainPlans(context.Background())
	if err != nil {
		t.Fatalf("ExplainPlans() error = %v", err)
	}
	for _, key := range []string{"sales_index_plan", "customer_index_plan", "product_index_plan"} {
		if plans[key].Empty() {
			t.Errorf("%s is empty", key)
		}
	}
}
