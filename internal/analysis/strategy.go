// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import (
	"fmt"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/table"
)

// Kind identifies a strategy.
type Kind string

const (
	// Revenue analyzes total_price.
	Revenue Kind = "revenue"

	// Quantity analyzes units sold.
	Quantity Kind = "quantity"

	// CustomerBehavior analyzes spend and frequency per customer.
	CustomerBehavior Kind = "customer_behavior"

	// ProductPerformance analyzes revenue per product.
	ProductPerformance Kind = "product_performance"
)

// Kinds lists every built-in kind in registration order.
var Kinds = []Kind{Revenue, Quantity, CustomerBehavior, ProductPerformance}

func (k Kind) String() string { return string(k) }

// ParseKind returns the kind for key.
func ParseKind(key string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == key {
			return k, nil
		}
	}
	return "", &UnsupportedStrategyError{Key: key}
}

// Metrics is a strategy result. It always contains "strategy".
type Metrics map[string]any

// Strategy computes metrics over a table.
type Strategy interface {
	// Name is the human-readable strategy name.
	Name() string

	// Kind is the factory key.
	Kind() Kind

	// RequiredColumns lists the columns Analyze needs.
	RequiredColumns() []string

	// Analyze computes the metrics. It never returns partial results.
	Analyze(t *table.Table) (Metrics, error)
}

// MissingColumnError reports a required column absent from the input.
type MissingColumnError struct {
	Column   string
	Analysis string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("data must contain '%s' column for %s analysis", e.Column, e.Analysis)
}

func (e *MissingColumnError) Unwrap() error { return apperrors.ErrMissingColumn }

// UnsupportedStrategyError is returned for unknown strategy keys.
type UnsupportedStrategyError struct {
	Key string
}

func (e *UnsupportedStrategyError) Error() string {
	return "unsupported strategy type: " + e.Key
}

func (e *UnsupportedStrategyError) Unwrap() error { return apperrors.ErrUnsupportedType }

// requireColumns checks columns in order and reports the first one missing.
func requireColumns(t *table.Table, analysis string, columns ...string) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return &MissingColumnError{Column: c, Analysis: analysis}
		}
	}
	return nil
}
