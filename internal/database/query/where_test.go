// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package query

import (
	"testing"
	"time"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}
	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddDateRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name      string
		start     *time.Time
		end       *time.Time
		wantWhere string
		wantArgs  int
	}{
		{"both bounds", &start, &end, "s.sale_date >= ? AND s.sale_date <= ?", 2},
		{"start only", &start, nil, "s.sale_date >= ?", 1},
		{"end only", nil, &end, "s.sale_date <= ?", 1},
		{"neither", nil, nil, "1=1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			whereClause, args := NewWhereBuilder().AddDateRange("s.sale_date", tt.start, tt.end).Build()
			if whereClause != tt.wantWhere {
				t.Errorf("Expected %q, got %q", tt.wantWhere, whereClause)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("Expected %d args, got %d", tt.wantArgs, len(args))
			}
		})
	}
}

func TestWhereBuilder_AddIn(t *testing.T) {
	wb := NewWhereBuilder().AddIn("category_id", 1, 2, 3).AddIn("product_id")

	whereClause, args := wb.Build()
	if whereClause != "category_id IN (?, ?, ?)" {
		t.Errorf("unexpected clause %q", whereClause)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestWhereBuilder_Chaining(t *testing.T) {
	wb := NewWhereBuilder().
		AddClause("quantity >= ?", 5).
		AddClause("discount = 0")

	whereClause, args := wb.BuildWithPrefix()
	if whereClause != "WHERE quantity >= ? AND discount = 0" {
		t.Errorf("unexpected clause %q", whereClause)
	}
	if len(args) != 1 || args[0] != 5 {
		t.Errorf("unexpected args %v", args)
	}
	if wb.Count() != 2 {
		t.Errorf("Expected count 2, got %d", wb.Count())
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"sales", true},
		{"main.sales", true},
		{"_tmp1", true},
		{"", false},
		{"1sales", false},
		{"sales; DROP TABLE sales", false},
		{"sales s", false},
		{"a.b.c", false},
	}
	for _, tt := range tests {
		if got := IsIdentifier(tt.name); got != tt.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if err := CheckIdentifier("bad name"); err == nil {
		t.Error("expected CheckIdentifier to reject a name with a space")
	}
}

func TestCheckTableRef(t *testing.T) {
	for _, ok := range []string{"sales", "sales s", "sales AS s", "main.sales  s"} {
		if err := CheckTableRef(ok); err != nil {
			t.Errorf("CheckTableRef(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "sales s x", "sales; --", "sales AS"} {
		if err := CheckTableRef(bad); err == nil {
			t.Errorf("CheckTableRef(%q) should fail", bad)
		}
	}
}

func TestWhereBuilder_AddWindow(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

	clause, args := NewWhereBuilder().AddWindow("s.sale_date", from, until).Build()
	if clause != "s.sale_date >= ? AND s.sale_date < ?" {
		t.Errorf("unexpected clause %q", clause)
	}
	if len(args) != 2 || args[0] != from || args[1] != until {
		t.Errorf("unexpected args %v", args)
	}
}

func TestAddEquals(t *testing.T) {
	category := int64(4)

	wb := AddEquals(NewWhereBuilder(), "p.category_id", &category)
	AddEquals[int64](wb, "s.customer_id", nil)

	clause, args := wb.Build()
	if clause != "p.category_id = ?" {
		t.Errorf("unexpected clause %q", clause)
	}
	if len(args) != 1 || args[0] != int64(4) {
		t.Errorf("unexpected args %v", args)
	}
}
