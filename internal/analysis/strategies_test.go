// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/table"
)

var floatApprox = cmpopts.EquateApprox(0, 1e-9)

func TestRevenueStrategy(t *testing.T) {
	data := table.FromColumn("total_price", 100.0, 200.0, 150.0, 300.0)

	got, err := RevenueStrategy{}.Analyze(data)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := Metrics{
		"strategy":            "Revenue Analysis Strategy",
		"total_revenue":       750.0,
		"average_sale_amount": 187.5,
		"median_sale_amount":  175.0,
		"min_sale_amount":     100.0,
		"max_sale_amount":     300.0,
		"revenue_std":         math.Sqrt(7291.666666666667),
		"total_transactions":  4,
		"revenue_quartiles": map[string]any{
			"q1": 137.5,
			"q2": 175.0,
			"q3": 225.0,
		},
	}
	if diff := cmp.Diff(want, got, floatApprox); diff != "" {
		t.Errorf("Analyze() mismatch (-want +got):\n%s", diff)
	}
}

func TestRevenueStrategy_EmptyTable(t *testing.T) {
	got, err := RevenueStrategy{}.Analyze(table.New([]string{"total_price"}, nil))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got["total_transactions"] != 0 || got["total_revenue"] != 0.0 || got["revenue_std"] != 0.0 {
		t.Errorf("unexpected metrics for empty table: %v", got)
	}
	if _, ok := got["revenue_quartiles"]; ok {
		t.Error("revenue_quartiles should be absent for an empty table")
	}
}

func TestRevenueStrategy_NonNumeric(t *testing.T) {
	_, err := RevenueStrategy{}.Analyze(table.FromColumn("total_price", "abc"))
	if !errors.Is(err, apperrors.ErrPrecondition) {
		t.Errorf("expected precondition error for non-numeric price, got %v", err)
	}
}

func TestQuantityStrategy(t *testing.T) {
	data := table.FromColumn("quantity", int64(1), int64(5), int64(3), int64(10), int64(2))

	got, err := QuantityStrategy{}.Analyze(data)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := Metrics{
		"strategy":                  "Quantity Analysis Strategy",
		"total_items_sold":          int64(21),
		"average_quantity_per_sale": 4.2,
		"median_quantity_per_sale":  3.0,
		"min_quantity":              int64(1),
		"max_quantity":              int64(10),
		"quantity_std":              math.Sqrt(12.7),
		"total_transactions":        5,
		"quantity_distribution": map[string]any{
			"single_item_sales":  1,
			"bulk_sales_5_plus":  2,
			"bulk_sales_10_plus": 1,
		},
	}
	if diff := cmp.Diff(want, got, floatApprox); diff != "" {
		t.Errorf("Analyze() mismatch (-want +got):\n%s", diff)
	}
}

func TestCustomerBehaviorStrategy(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	data := table.FromRecords([]string{"customer_id", "total_price", "sale_date"},
		map[string]any{"customer_id": 1, "total_price": 100.0, "sale_date": day(3)},
		map[string]any{"customer_id": 1, "total_price": 50.0, "sale_date": day(1)},
		map[string]any{"customer_id": 2, "total_price": 500.0, "sale_date": day(10)},
		map[string]any{"customer_id": 3, "total_price": 20.0, "sale_date": day(5)},
		map[string]any{"customer_id": 3, "total_price": 30.0, "sale_date": day(6)},
		map[string]any{"customer_id": 3, "total_price": 40.0, "sale_date": day(7)},
	)

	got, err := CustomerBehaviorStrategy{}.Analyze(data)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// spent = [150, 500, 90]; q0.8 = 360. counts = [2, 1, 3]; q0.8 = 2.6.
	want := Metrics{
		"strategy":                    "Customer Behavior Analysis Strategy",
		"unique_customers":            3,
		"avg_customer_lifetime_value": 740.0 / 3,
		"avg_purchases_per_customer":  2.0,
		"top_customers_count":         1,
		"one_time_customers":          1,
		"repeat_customers":            2,
		"customer_segments": map[string]any{
			"high_value_high_frequency": 0,
			"high_value_low_frequency":  1,
			"low_value_high_frequency":  1,
			"low_value_low_frequency":   1,
		},
		"first_purchase_date": day(1),
		"last_purchase_date":  day(10),
	}
	if diff := cmp.Diff(want, got, floatApprox); diff != "" {
		t.Errorf("Analyze() mismatch (-want +got):\n%s", diff)
	}
}

func TestCustomerBehaviorStrategy_WithoutDates(t *testing.T) {
	data := table.FromRecords([]string{"customer_id", "total_price"},
		map[string]any{"customer_id": 1, "total_price": 10.0},
	)
	got, err := CustomerBehaviorStrategy{}.Analyze(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["first_purchase_date"]; ok {
		t.Error("first_purchase_date should be absent without a sale_date column")
	}
	if got["unique_customers"] != 1 {
		t.Errorf("unique_customers = %v, want 1", got["unique_customers"])
	}
}

func TestProductPerformanceStrategy(t *testing.T) {
	data := table.FromRecords([]string{"product_id", "total_price", "quantity"},
		map[string]any{"product_id": 1, "total_price": 100.0, "quantity": 1},
		map[string]any{"product_id": 1, "total_price": 100.0, "quantity": 1},
		map[string]any{"product_id": 2, "total_price": 50.0, "quantity": 5},
		map[string]any{"product_id": 3, "total_price": 10.0, "quantity": 2},
		map[string]any{"product_id": 4, "total_price": 400.0, "quantity": 4},
		map[string]any{"product_id": 5, "total_price": 30.0, "quantity": 3},
	)

	got, err := ProductPerformanceStrategy{}.Analyze(data)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// revenue = [200, 50, 10, 400, 30]; sorted [10, 30, 50, 200, 400]
	// q0.2 = 26, q0.4 = 42, q0.8 = 240.
	want := Metrics{
		"strategy":                       "Product Performance Analysis Strategy",
		"unique_products_sold":           5,
		"avg_revenue_per_product":        138.0,
		"avg_quantity_per_product":       3.2,
		"top_performing_products_count":  1,
		"underperforming_products_count": 1,
		"product_performance_tiers": map[string]any{
			"top_tier": 1,
			"mid_tier": 2,
			"low_tier": 2,
		},
	}
	if diff := cmp.Diff(want, got, floatApprox); diff != "" {
		t.Errorf("Analyze() mismatch (-want +got):\n%s", diff)
	}
}

func TestStrategies_MissingColumns(t *testing.T) {
	tests := []struct {
		strategy Strategy
		data     *table.Table
		wantMsg  string
	}{
		{
			strategy: RevenueStrategy{},
			data:     table.FromColumn("quantity", 1),
			wantMsg:  "data must contain 'total_price' column for revenue analysis",
		},
		{
			strategy: QuantityStrategy{},
			data:     table.FromColumn("total_price", 1.0),
			wantMsg:  "data must contain 'quantity' column for quantity analysis",
		},
		{
			strategy: CustomerBehaviorStrategy{},
			data:     table.FromColumn("total_price", 1.0),
			wantMsg:  "data must contain 'customer_id' column for customer behavior analysis",
		},
		{
			strategy: ProductPerformanceStrategy{},
			data:     table.FromRecords([]string{"product_id", "total_price"}, map[string]any{"product_id": 1, "total_price": 1.0}),
			wantMsg:  "data must contain 'quantity' column for product performance analysis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.Kind().String(), func(t *testing.T) {
			_, err := tt.strategy.Analyze(tt.data)

			var missing *MissingColumnError
			if !errors.As(err, &missing) {
				t.Fatalf("expected *MissingColumnError, got %v", err)
			}
			if !errors.Is(err, apperrors.ErrMissingColumn) || !errors.Is(err, apperrors.ErrPrecondition) {
				t.Error("expected error to wrap ErrMissingColumn and ErrPrecondition")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestStrategies_NamesAreStableAndDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, key := range DefaultFactory().AvailableStrategies() {
		s, err := DefaultFactory().CreateStrategy(key)
		if err != nil {
			t.Fatal(err)
		}
		again, _ := DefaultFactory().CreateStrategy(key)
		if s.Name() != again.Name() {
			t.Errorf("%s: name changed between instances", key)
		}
		if seen[s.Name()] {
			t.Errorf("duplicate strategy name %q", s.Name())
		}
		seen[s.Name()] = true
		if s.Kind().String() != key {
			t.Errorf("Kind() = %q, want %q", s.Kind(), key)
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 strategies, got %d", len(seen))
	}
}
