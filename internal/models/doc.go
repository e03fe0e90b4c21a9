// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package models defines the sales entities and the registry that builds them.

# Entities

Category, City, Country, Customer, Employee, Product and Sale are plain value
objects with optional (pointer) fields. They are built from a mapping or from
one row of a result table:

	c := models.CategoryFromMap(map[string]any{"category_id": 1, "category_name": "Dairy"})
	p := models.ProductFromRow(t.Columns, t.Rows[0])

Each field is looked up by its storage name (category_name) first and its
display name (CategoryName) second, so rows read from the database and rows
read from the original CSV exports both work.

Numbers are coerced: JSON float64 values become integers when whole, and id
fields also accept numeric strings. A value that cannot be converted is kept
as-is and reported by Validate.

# Validation

Validate runs the struct's validate tags through the shared validator and
then the type checks. It returns nil or a *validation.RequestValidationError
listing every violation under storage names:

	if err := c.Validate(); err != nil {
	    // category_name is required
	}

# Registry

Registry maps a type key ("category", "product", ...) to a Factory:

	r := models.NewRegistry()
	m, err := r.CreateModel("category", data)
	if errors.Is(err, apperrors.ErrUnsupportedType) { ... }

RegisterFactory adds new types at runtime. Registry is safe for concurrent use.
*/
package models
