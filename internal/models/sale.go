// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

import "time"

// Sale is one sales transaction line.
type Sale struct {
	SaleID            *int64     `json:"sale_id"`
	SalesPersonID     *int64     `json:"sales_person_id"`
	CustomerID        *int64     `json:"customer_id"`
	ProductID         *int64     `json:"product_id"`
	Quantity          *int64     `json:"quantity" validate:"omitempty,gte=0"`
	Discount          *float64   `json:"discount"`
	TotalPrice        *float64   `json:"total_price"`
	SaleDate          *time.Time `json:"sale_date"`
	TransactionNumber *string    `json:"transaction_number"`

	extra fields
}

// SaleFromMap builds a Sale from storage or display keys. Display names
// follow the CSV export (SalesID, SalesDate).
func SaleFromMap(data map[string]any) *Sale {
	s := &Sale{}
	d := newDecoder(data, &s.extra)
	s.SaleID = d.idField("sale_id", "SalesID")
	s.SalesPersonID = d.idField("sales_person_id", "SalesPersonID")
	s.CustomerID = d.idField("customer_id", "CustomerID")
	s.ProductID = d.idField("product_id", "ProductID")
	s.Quantity = d.intField("quantity", "Quantity")
	s.Discount = d.floatField("discount", "Discount")
	s.TotalPrice = d.floatField("total_price", "TotalPrice")
	s.SaleDate = d.timeField("sale_date", "SalesDate")
	s.TransactionNumber = d.stringField("transaction_number", "TransactionNumber")
	return s
}

// SaleFromRow builds a Sale from one result row.
func SaleFromRow(columns []string, row []any) *Sale {
	return SaleFromMap(rowMap(columns, row))
}

func (s *Sale) Validate() error { return validate(s, s.extra) }

func (s *Sale) TableName() string { return "sales" }

func (s *Sale) ToMap() map[string]any {
	return s.extra.overlay(map[string]any{
		"sale_id":            deref(s.SaleID),
		"sales_person_id":    deref(s.SalesPersonID),
		"customer_id":        deref(s.CustomerID),
		"product_id":         deref(s.ProductID),
		"quantity":           deref(s.Quantity),
		"discount":           deref(s.Discount),
		"total_price":        deref(s.TotalPrice),
		"sale_date":          deref(s.SaleDate),
		"transaction_number": deref(s.TransactionNumber),
	})
}
