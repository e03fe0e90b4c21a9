// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
)

// queryParams parses optional query string values, remembering the first
// error so handlers can check once.
type queryParams struct {
	values url.Values
	err    error
}

func newQueryParams(values url.Values) *queryParams {
	return &queryParams{values: values}
}

func (p *queryParams) fail(name, value, want string) {
	if p.err == nil {
		p.err = apperrors.Preconditionf("invalid %s %q: want %s", name, value, want)
	}
}

// Int returns the named integer, or def when absent.
func (p *queryParams) Int(name string, def int) int {
	raw := strings.TrimSpace(p.values.Get(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(name, raw, "an integer")
		return def
	}
	return n
}

// Limit returns the named row limit, or def when absent. Zero and negative
// limits are rejected.
func (p *queryParams) Limit(name string, def int) int {
	n := p.Int(name, def)
	if n <= 0 {
		p.fail(name, strings.TrimSpace(p.values.Get(name)), "a positive integer")
		return def
	}
	return n
}

// Int64Ptr returns the named positive integer, or nil when absent.
func (p *queryParams) Int64Ptr(name string) *int64 {
	raw := strings.TrimSpace(p.values.Get(name))
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		p.fail(name, raw, "a positive integer")
		return nil
	}
	return &n
}

// Date returns the named YYYY-MM-DD date in UTC, or nil when absent.
func (p *queryParams) Date(name string) *time.Time {
	raw := strings.TrimSpace(p.values.Get(name))
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		p.fail(name, raw, "a YYYY-MM-DD date")
		return nil
	}
	return &t
}

// Bool returns the named boolean, or false when absent.
func (p *queryParams) Bool(name string) bool {
	raw := strings.TrimSpace(p.values.Get(name))
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(name, raw, "true or false")
		return false
	}
	return b
}

// String returns the named value, or def when absent.
func (p *queryParams) String(name, def string) string {
	if v := strings.TrimSpace(p.values.Get(name)); v != "" {
		return v
	}
	return def
}

// List splits a comma separated value, dropping empty items.
func (p *queryParams) List(name string) []string {
	var out []string
	for _, item := range strings.Split(p.values.Get(name), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (p *queryParams) Err() error { return p.err }
