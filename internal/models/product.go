// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

import "time"

// Product is an item for sale.
type Product struct {
	ProductID    *int64     `json:"product_id"`
	ProductName  *string    `json:"product_name" validate:"required"`
	Price        *float64   `json:"price"`
	CategoryID   *int64     `json:"category_id"`
	ClassType    *string    `json:"class_type" validate:"omitempty,oneof=Low Medium High"`
	ModifyDate   *time.Time `json:"modify_date"`
	Resistant    *string    `json:"resistant" validate:"omitempty,oneof=Durable Weak Unknown"`
	IsAllergic   *string    `json:"is_allergic" validate:"omitempty,oneof=TRUE FALSE Unknown"`
	VitalityDays *int64     `json:"vitality_days"`

	extra fields
}

// ProductFromMap builds a Product from storage or display keys. The display
// name of class_type is "Class".
func ProductFromMap(data map[string]any) *Product {
	p := &Product{}
	d := newDecoder(data, &p.extra)
	p.ProductID = d.idField("product_id", "ProductID")
	p.ProductName = d.stringField("product_name", "ProductName")
	p.Price = d.floatField("price", "Price")
	p.CategoryID = d.idField("category_id", "CategoryID")
	p.ClassType = d.stringField("class_type", "Class")
	p.ModifyDate = d.timeField("modify_date", "ModifyDate")
	p.Resistant = d.stringField("resistant", "Resistant")
	p.IsAllergic = d.stringField("is_allergic", "IsAllergic")
	p.VitalityDays = d.intField("vitality_days", "VitalityDays")
	return p
}

// ProductFromRow builds a Product from one result row.
func ProductFromRow(columns []string, row []any) *Product {
	return ProductFromMap(rowMap(columns, row))
}

func (p *Product) Validate() error { return validate(p, p.extra) }

func (p *Product) TableName() string { return "products" }

func (p *Product) ToMap() map[string]any {
	return p.extra.overlay(map[string]any{
		"product_id":    deref(p.ProductID),
		"product_name":  deref(p.ProductName),
		"price":         deref(p.Price),
		"category_id":   deref(p.CategoryID),
		"class_type":    deref(p.ClassType),
		"modify_date":   deref(p.ModifyDate),
		"resistant":     deref(p.Resistant),
		"is_allergic":   deref(p.IsAllergic),
		"vitality_days": deref(p.VitalityDays),
	})
}
