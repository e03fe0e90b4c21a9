// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/table"
)

// Factory builds one entity type.
type Factory interface {
	FromMap(data map[string]any) (Model, error)
	FromRow(columns []string, row []any) (Model, error)
}

// FactoryFunc adapts a pair of constructors to Factory.
type FactoryFunc[T Model] struct {
	Map func(map[string]any) T
	Row func([]string, []any) T
}

func (f FactoryFunc[T]) FromMap(data map[string]any) (Model, error) {
	return f.Map(data), nil
}

func (f FactoryFunc[T]) FromRow(columns []string, row []any) (Model, error) {
	if f.Row == nil {
		return f.Map(rowMap(columns, row)), nil
	}
	return f.Row(columns, row), nil
}

// UnsupportedModelError is returned for keys with no registered factory.
type UnsupportedModelError struct {
	Kind string
}

func (e *UnsupportedModelError) Error() string {
	return "unsupported model type: " + e.Kind
}

func (e *UnsupportedModelError) Unwrap() error { return apperrors.ErrUnsupportedType }

// Registry maps type keys to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry with every built-in entity registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.RegisterFactory("category", FactoryFunc[*Category]{Map: CategoryFromMap, Row: CategoryFromRow})
	r.RegisterFactory("product", FactoryFunc[*Product]{Map: ProductFromMap, Row: ProductFromRow})
	r.RegisterFactory("sale", FactoryFunc[*Sale]{Map: SaleFromMap, Row: SaleFromRow})
	r.RegisterFactory("city", FactoryFunc[*City]{Map: CityFromMap, Row: CityFromRow})
	r.RegisterFactory("country", FactoryFunc[*Country]{Map: CountryFromMap, Row: CountryFromRow})
	r.RegisterFactory("customer", FactoryFunc[*Customer]{Map: CustomerFromMap, Row: CustomerFromRow})
	r.RegisterFactory("employee", FactoryFunc[*Employee]{Map: EmployeeFromMap, Row: EmployeeFromRow})
	return r
}

// RegisterFactory adds or replaces the factory for kind.
func (r *Registry) RegisterFactory(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

func (r *Registry) factory(kind string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[kind]
	if !ok {
		return nil, &UnsupportedModelError{Kind: kind}
	}
	return f, nil
}

// CreateModel builds an entity of type kind from data.
func (r *Registry) CreateModel(kind string, data map[string]any) (Model, error) {
	f, err := r.factory(kind)
	if err != nil {
		return nil, err
	}
	return f.FromMap(data)
}

// CreateFromRow builds an entity of type kind from row i of t.
func (r *Registry) CreateFromRow(kind string, t *table.Table, i int) (Model, error) {
	f, err := r.factory(kind)
	if err != nil {
		return nil, err
	}
	if t == nil || i < 0 || i >= t.Len() {
		return nil, apperrors.Preconditionf("row %d out of range for %s", i, describe(t))
	}
	return f.FromRow(t.Columns, t.Rows[i])
}

// CreateAll builds one entity per row of t.
func (r *Registry) CreateAll(kind string, t *table.Table) ([]Model, error) {
	f, err := r.factory(kind)
	if err != nil {
		return nil, err
	}
	out := make([]Model, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		m, err := f.FromRow(t.Columns, t.Rows[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Types returns the registered keys, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func describe(t *table.Table) string {
	if t == nil {
		return "nil table"
	}
	return "table of " + t.Shape()
}
