// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/config"
)

func mustDialect(t *testing.T, driver string) Dialect {
	t.Helper()
	d, err := DialectFor(driver)
	if err != nil {
		t.Fatalf("DialectFor(%q) error = %v", driver, err)
	}
	return d
}

func TestBindNamed(t *testing.T) {
	params := map[string]any{"id": int64(7), "name": "Widget"}

	tests := []struct {
		name     string
		driver   string
		query    string
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "numbered markers reuse repeated names",
			driver:   config.DriverDuckDB,
			query:    "SELECT * FROM sales WHERE customer_id = :id OR sales_person_id = :id AND note = :name",
			wantSQL:  "SELECT * FROM sales WHERE customer_id = $1 OR sales_person_id = $1 AND note = $2",
			wantArgs: []any{int64(7), "Widget"},
		},
		{
			name:     "question marks repeat values",
			driver:   config.DriverMySQL,
			query:    "SELECT * FROM sales WHERE customer_id = :id OR sales_person_id = :id",
			wantSQL:  "SELECT * FROM sales WHERE customer_id = ? OR sales_person_id = ?",
			wantArgs: []any{int64(7), int64(7)},
		},
		{
			name:     "cast operator is kept",
			driver:   config.DriverPostgres,
			query:    "SELECT price::text FROM products WHERE product_id = :id",
			wantSQL:  "SELECT price::text FROM products WHERE product_id = $1",
			wantArgs: []any{int64(7)},
		},
		{
			name:     "quoted text is ignored",
			driver:   config.DriverSQLite,
			query:    "SELECT ':id' AS literal, \"col:name\" FROM t WHERE a = :id",
			wantSQL:  "SELECT ':id' AS literal, \"col:name\" FROM t WHERE a = ?",
			wantArgs: []any{int64(7)},
		},
		{
			name:     "comments are ignored",
			driver:   config.DriverDuckDB,
			query:    "SELECT 1 -- :ignored\nFROM t /* :also */ WHERE a = :id",
			wantSQL:  "SELECT 1 -- :ignored\nFROM t /* :also */ WHERE a = $1",
			wantArgs: []any{int64(7)},
		},
		{
			name:    "no placeholders",
			driver:  config.DriverDuckDB,
			query:   "SELECT '10:30' AS at",
			wantSQL: "SELECT '10:30' AS at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs, err := BindNamed(mustDialect(t, tt.driver), tt.query, params)
			if err != nil {
				t.Fatalf("BindNamed() error = %v", err)
			}
			if gotSQL != tt.wantSQL {
				t.Errorf("BindNamed() sql =\n%s\nwant\n%s", gotSQL, tt.wantSQL)
			}
			if diff := cmp.Diff(tt.wantArgs, gotArgs); diff != "" {
				t.Errorf("BindNamed() args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBindNamed_MissingParameter(t *testing.T) {
	_, _, err := BindNamed(mustDialect(t, config.DriverDuckDB), "SELECT * FROM sales WHERE sale_id = :sale_id", nil)
	if !errors.Is(err, apperrors.ErrPrecondition) {
		t.Fatalf("BindNamed() error = %v, want precondition error", err)
	}
	if want := "missing value for query parameter :sale_id"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestBindNamed_TimesAreUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, loc)

	_, args, err := BindNamed(mustDialect(t, config.DriverDuckDB), "SELECT :at", map[string]any{"at": at})
	if err != nil {
		t.Fatalf("BindNamed() error = %v", err)
	}
	got, ok := args[0].(time.Time)
	if !ok {
		t.Fatalf("arg type = %T, want time.Time", args[0])
	}
	if got.Location() != time.UTC || !got.Equal(at) {
		t.Errorf("arg = %v, want %v in UTC", got, at)
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM sales WHERE a = ? AND b = '?' AND c = ?"

	if got, want := Rebind(mustDialect(t, config.DriverPostgres), q), "SELECT * FROM sales WHERE a = $1 AND b = '?' AND c = $2"; got != want {
		t.Errorf("Rebind(postgres) = %q, want %q", got, want)
	}
	for _, driver := range []string{config.DriverDuckDB, config.DriverMySQL, config.DriverSQLite} {
		if got := Rebind(mustDialect(t, driver), q); got != q {
			t.Errorf("Rebind(%s) = %q, want unchanged", driver, got)
		}
	}
}
