// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

import (
	"github.com/tomtom215/salesreport/internal/validation"
)

// Model is implemented by every entity.
type Model interface {
	// Validate returns nil or a *validation.RequestValidationError.
	Validate() error
	// ToMap returns the entity keyed by storage name. Unset fields are nil.
	ToMap() map[string]any
	// TableName is the database table the entity is stored in.
	TableName() string
}

// Compile-time interface checks.
var (
	_ Model = (*Category)(nil)
	_ Model = (*City)(nil)
	_ Model = (*Country)(nil)
	_ Model = (*Customer)(nil)
	_ Model = (*Employee)(nil)
	_ Model = (*Product)(nil)
	_ Model = (*Sale)(nil)
)

// validate runs the struct tags of m plus the type violations recorded while
// decoding.
func validate(m any, f fields) error {
	return validation.Join(validation.ValidateStruct(m), f.typeErrors()...)
}
