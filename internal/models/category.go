// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

// Category groups products.
type Category struct {
	CategoryID   *int64  `json:"category_id"`
	CategoryName *string `json:"category_name" validate:"required"`

	extra fields
}

// CategoryFromMap builds a Category from storage or display keys.
func CategoryFromMap(data map[string]any) *Category {
	c := &Category{}
	d := newDecoder(data, &c.extra)
	c.CategoryID = d.idField("category_id", "CategoryID")
	c.CategoryName = d.stringField("category_name", "CategoryName")
	return c
}

// CategoryFromRow builds a Category from one result row.
func CategoryFromRow(columns []string, row []any) *Category {
	return CategoryFromMap(rowMap(columns, row))
}

func (c *Category) Validate() error { return validate(c, c.extra) }

func (c *Category) TableName() string { return "categories" }

func (c *Category) ToMap() map[string]any {
	return c.extra.overlay(map[string]any{
		"category_id":   deref(c.CategoryID),
		"category_name": deref(c.CategoryName),
	})
}
