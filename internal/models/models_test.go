// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/salesreport/internal/validation"
)

func fieldErrors(t *testing.T, err error) *validation.RequestValidationError {
	t.Helper()
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.RequestValidationError, got %T (%v)", err, err)
	}
	return verr
}

func TestCategory(t *testing.T) {
	c := CategoryFromMap(map[string]any{"category_id": 1, "category_name": "Electronics"})
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if *c.CategoryID != 1 || *c.CategoryName != "Electronics" {
		t.Errorf("unexpected category: %v", c.ToMap())
	}
	if c.TableName() != "categories" {
		t.Errorf("TableName() = %q", c.TableName())
	}

	empty := CategoryFromMap(map[string]any{"category_id": 2})
	verr := fieldErrors(t, empty.Validate())
	if !verr.HasField("category_name") {
		t.Errorf("expected category_name violation, got %v", verr)
	}
}

func TestStorageNameWinsOverDisplayName(t *testing.T) {
	c := CategoryFromMap(map[string]any{
		"category_name": "storage",
		"CategoryName":  "display",
		"CategoryID":    "7",
	})
	if *c.CategoryName != "storage" {
		t.Errorf("CategoryName = %q, want storage", *c.CategoryName)
	}
	if c.CategoryID == nil || *c.CategoryID != 7 {
		t.Errorf("CategoryID = %v, want 7 from numeric string", c.CategoryID)
	}
}

func TestCountry(t *testing.T) {
	tests := []struct {
		name      string
		data      map[string]any
		wantField string
	}{
		{"valid", map[string]any{"country_name": "United States", "country_code": "US"}, ""},
		{"code too long", map[string]any{"country_name": "United States", "country_code": "USA"}, "country_code"},
		{"missing name", map[string]any{"CountryCode": "US"}, "country_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CountryFromMap(tt.data).Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !fieldErrors(t, err).HasField(tt.wantField) {
				t.Errorf("expected violation on %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestCity(t *testing.T) {
	c := CityFromMap(map[string]any{"CityName": "Austin", "Zipcode": 73301, "CountryID": float64(1)})
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if *c.ZipCode != "73301" || *c.CountryID != 1 {
		t.Errorf("unexpected city: %v", c.ToMap())
	}

	bad := CityFromMap(map[string]any{"city_name": "Austin", "country_id": 1.5})
	verr := fieldErrors(t, bad.Validate())
	if !verr.HasField("country_id") {
		t.Errorf("expected country_id type violation, got %v", verr)
	}
	if got := bad.ToMap()["country_id"]; got != 1.5 {
		t.Errorf("ToMap should echo the raw invalid value, got %v", got)
	}
}

func TestCustomerAndEmployee(t *testing.T) {
	cust := CustomerFromMap(map[string]any{"first_name": "Ada", "last_name": "Lovelace", "middle_initial": "ABCDEF"})
	if !fieldErrors(t, cust.Validate()).HasField("middle_initial") {
		t.Error("expected middle_initial violation")
	}
	if cust.FullName() != "Ada Lovelace" {
		t.Errorf("FullName() = %q", cust.FullName())
	}

	emp := EmployeeFromMap(map[string]any{
		"FirstName": "Grace",
		"LastName":  "Hopper",
		"Gender":    "X",
		"HireDate":  "2020-03-01",
	})
	verr := fieldErrors(t, emp.Validate())
	if !verr.HasField("gender") {
		t.Errorf("expected gender violation, got %v", verr)
	}
	want := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	if emp.HireDate == nil || !emp.HireDate.Equal(want) {
		t.Errorf("HireDate = %v, want %v", emp.HireDate, want)
	}

	noNames := EmployeeFromMap(map[string]any{"gender": "M"})
	verr = fieldErrors(t, noNames.Validate())
	if !verr.HasField("first_name") || !verr.HasField("last_name") {
		t.Errorf("expected both name violations, got %v", verr)
	}
}

func TestProduct(t *testing.T) {
	tests := []struct {
		name      string
		data      map[string]any
		wantField string
	}{
		{"valid", map[string]any{"product_name": "Widget", "price": 9.99, "class_type": "Low", "resistant": "Durable", "is_allergic": "FALSE"}, ""},
		{"display names", map[string]any{"ProductName": "Widget", "Class": "High", "VitalityDays": float64(30)}, ""},
		{"bad class", map[string]any{"product_name": "Widget", "class_type": "Extreme"}, "class_type"},
		{"bad resistant", map[string]any{"product_name": "Widget", "resistant": "Strong"}, "resistant"},
		{"bad allergic", map[string]any{"product_name": "Widget", "is_allergic": "maybe"}, "is_allergic"},
		{"price not a number", map[string]any{"product_name": "Widget", "price": "cheap"}, "price"},
		{"fractional vitality", map[string]any{"product_name": "Widget", "vitality_days": 1.5}, "vitality_days"},
		{"missing name", map[string]any{"price": 1.0}, "product_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ProductFromMap(tt.data).Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !fieldErrors(t, err).HasField(tt.wantField) {
				t.Errorf("expected violation on %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestSale(t *testing.T) {
	tests := []struct {
		name      string
		data      map[string]any
		wantField string
	}{
		{"valid", map[string]any{"quantity": 3, "discount": 0.1, "total_price": 27.0, "sales_person_id": 4}, ""},
		{"json numbers", map[string]any{"quantity": float64(3), "total_price": float64(27)}, ""},
		{"negative quantity", map[string]any{"quantity": -1}, "quantity"},
		{"quantity string", map[string]any{"quantity": "3"}, "quantity"},
		{"discount string", map[string]any{"discount": "10%"}, "discount"},
		{"sales person not int", map[string]any{"sales_person_id": "abc"}, "sales_person_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SaleFromMap(tt.data).Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !fieldErrors(t, err).HasField(tt.wantField) {
				t.Errorf("expected violation on %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestSaleFromRow(t *testing.T) {
	saleDate := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	columns := []string{"SalesID", "CustomerID", "Quantity", "TotalPrice", "SalesDate", "TransactionNumber"}
	row := []any{int64(1), int64(2), int64(3), 45.5, saleDate, "TX-1"}

	s := SaleFromRow(columns, row)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := map[string]any{
		"sale_id":            int64(1),
		"sales_person_id":    nil,
		"customer_id":        int64(2),
		"product_id":         nil,
		"quantity":           int64(3),
		"discount":           nil,
		"total_price":        45.5,
		"sale_date":          saleDate,
		"transaction_number": "TX-1",
	}
	if diff := cmp.Diff(want, s.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaleFromDecodedNumbers(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`{"sale_id": 9, "quantity": 3, "total_price": 27.5}`))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		t.Fatal(err)
	}
	if _, ok := data["quantity"].(json.Number); !ok {
		t.Fatalf("quantity decoded as %T, want json.Number", data["quantity"])
	}

	s := SaleFromMap(data)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	got := s.ToMap()
	if got["sale_id"] != int64(9) || got["quantity"] != int64(3) || got["total_price"] != 27.5 {
		t.Errorf("ToMap() = %v", got)
	}
}
