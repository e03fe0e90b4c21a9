// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/salesreport/internal/table"
	"github.com/tomtom215/salesreport/internal/validation"
)

// fields records values that could not be converted to the field's type.
// They are reported by Validate and echoed by ToMap.
type fields struct {
	invalid map[string]invalidValue
}

type invalidValue struct {
	raw  any
	kind string
}

func (f *fields) reject(name, kind string, raw any) {
	if f.invalid == nil {
		f.invalid = make(map[string]invalidValue)
	}
	f.invalid[name] = invalidValue{raw: raw, kind: kind}
}

func (f fields) typeErrors() []validation.ValidationError {
	if len(f.invalid) == 0 {
		return nil
	}
	names := make([]string, 0, len(f.invalid))
	for name := range f.invalid {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]validation.ValidationError, 0, len(names))
	for _, name := range names {
		iv := f.invalid[name]
		errs = append(errs, validation.NewValidationError(name, iv.kind, iv.raw,
			fmt.Sprintf("%s must be %s, got %T", name, article(iv.kind), iv.raw)))
	}
	return errs
}

// overlay writes the raw invalid values into m.
func (f fields) overlay(m map[string]any) map[string]any {
	for name, iv := range f.invalid {
		m[name] = iv.raw
	}
	return m
}

func article(kind string) string {
	switch kind {
	case "integer":
		return "an integer"
	case "number":
		return "a number"
	default:
		return "a " + kind
	}
}

// source resolves a field by storage name first, then display name. Nil
// values count as absent.
type source func(storage, display string) (any, bool)

func mapSource(data map[string]any) source {
	return func(storage, display string) (any, bool) {
		if v, ok := data[storage]; ok && v != nil {
			return v, true
		}
		if v, ok := data[display]; ok && v != nil {
			return v, true
		}
		return nil, false
	}
}

// rowMap zips columns and row. Extra cells or columns are ignored.
func rowMap(columns []string, row []any) map[string]any {
	n := min(len(columns), len(row))
	m := make(map[string]any, n)
	for i := 0; i < n; i++ {
		m[columns[i]] = row[i]
	}
	return m
}

// decoder converts looked-up values into typed pointers, recording failures.
type decoder struct {
	src    source
	fields *fields
}

func newDecoder(data map[string]any, f *fields) decoder {
	return decoder{src: mapSource(data), fields: f}
}

func (d decoder) intField(storage, display string) *int64 {
	return d.intValue(storage, display, false)
}

// idField is intField with numeric strings accepted.
func (d decoder) idField(storage, display string) *int64 {
	return d.intValue(storage, display, true)
}

func (d decoder) intValue(storage, display string, allowString bool) *int64 {
	v, ok := d.src(storage, display)
	if !ok {
		return nil
	}
	if n, ok := toInt(v, allowString); ok {
		return &n
	}
	d.fields.reject(storage, "integer", v)
	return nil
}

func (d decoder) floatField(storage, display string) *float64 {
	v, ok := d.src(storage, display)
	if !ok {
		return nil
	}
	if f, ok := toFloat(v); ok {
		return &f
	}
	d.fields.reject(storage, "number", v)
	return nil
}

func (d decoder) stringField(storage, display string) *string {
	v, ok := d.src(storage, display)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case string:
		return &s
	case []byte:
		str := string(s)
		return &str
	case int, int32, int64, float64:
		str := fmt.Sprint(s)
		return &str
	}
	d.fields.reject(storage, "string", v)
	return nil
}

func (d decoder) timeField(storage, display string) *time.Time {
	v, ok := d.src(storage, display)
	if !ok {
		return nil
	}
	if t, ok := table.AsTime(v); ok {
		return &t
	}
	d.fields.reject(storage, "date", v)
	return nil
}

func toInt(v any, allowString bool) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case float32:
		return toInt(float64(n), allowString)
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		if !allowString {
			return 0, false
		}
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case interface{ Float64() float64 }:
		return n.Float64(), true
	case string, bool:
		return 0, false
	}
	if i, ok := toInt(v, false); ok {
		return float64(i), true
	}
	return 0, false
}

// deref returns *p or nil so that unset fields are untyped nil in ToMap.
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
