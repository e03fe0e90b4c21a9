// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/config"
)

func TestDialectFor_Unknown(t *testing.T) {
	_, err := DialectFor("oracle")
	if !errors.Is(err, apperrors.ErrPrecondition) {
		t.Fatalf("DialectFor(oracle) error = %v, want precondition error", err)
	}
}

func TestParsePeriod(t *testing.T) {
	tests := map[string]Period{
		"daily":     Daily,
		"WEEKLY":    Weekly,
		"monthly":   Monthly,
		"quarterly": Monthly,
		"":          Monthly,
	}
	for in, want := range tests {
		if got := ParsePeriod(in); got != want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDialect_Expressions(t *testing.T) {
	tests := []struct {
		driver string
		got    func(Dialect) string
		want   string
	}{
		{config.DriverDuckDB, func(d Dialect) string { return d.Placeholder(3) }, "$3"},
		{config.DriverMySQL, func(d Dialect) string { return d.Placeholder(3) }, "?"},
		{config.DriverMySQL, func(d Dialect) string { return d.Bucket(Monthly, "s.sale_date") }, "DATE_FORMAT(s.sale_date, '%Y-%m')"},
		{config.DriverPostgres, func(d Dialect) string { return d.Bucket(Weekly, "s.sale_date") }, "to_char(s.sale_date, 'IYYY-IW')"},
		{config.DriverSQLite, func(d Dialect) string { return d.Bucket(Daily, "s.sale_date") }, "strftime('%Y-%m-%d', s.sale_date)"},
		{config.DriverDuckDB, func(d Dialect) string { return d.Bucket(Monthly, "s.sale_date") }, "strftime(s.sale_date, '%Y-%m')"},
		{config.DriverMySQL, func(d Dialect) string { return d.DaysBetween("CURDATE()", "x") }, "DATEDIFF(CURDATE(), x)"},
		{config.DriverSQLite, func(d Dialect) string { return d.Explain("SELECT 1") }, "EXPLAIN QUERY PLAN SELECT 1"},
		{config.DriverDuckDB, func(d Dialect) string { return d.Explain("SELECT 1") }, "EXPLAIN SELECT 1"},
		{config.DriverMySQL, func(d Dialect) string { return d.CreateIndex("idx", "t", "a", "b") }, "CREATE INDEX idx ON t (a, b)"},
		{config.DriverPostgres, func(d Dialect) string { return d.CreateIndex("idx", "t", "a") }, "CREATE INDEX IF NOT EXISTS idx ON t (a)"},
		{config.DriverMySQL, func(d Dialect) string { return d.TimestampType() }, "DATETIME"},
		{config.DriverDuckDB, func(d Dialect) string { return d.MoneyType() }, "DOUBLE"},
		{config.DriverPostgres, func(d Dialect) string { return d.MoneyType() }, "DECIMAL(10, 2)"},
	}

	for _, tt := range tests {
		d := mustDialect(t, tt.driver)
		if got := tt.got(d); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.driver, got, tt.want)
		}
	}
}

func TestDialect_SQLiteMonthName(t *testing.T) {
	got := mustDialect(t, config.DriverSQLite).MonthName("sale_date")
	for _, want := range []string{"CASE CAST(strftime('%m', sale_date) AS INTEGER)", "WHEN 1 THEN 'January'", "WHEN 12 THEN 'December'", " END"} {
		if !strings.Contains(got, want) {
			t.Errorf("MonthName() = %q, missing %q", got, want)
		}
	}
}

func TestDialect_TableInfo(t *testing.T) {
	q, params := mustDialect(t, config.DriverPostgres).TableInfo("sales")
	if !strings.Contains(q, "information_schema.columns") || params["table_name"] != "sales" {
		t.Errorf("postgres TableInfo() = %q, %v", q, params)
	}
	if q, _ := mustDialect(t, config.DriverSQLite).TableInfo("sales"); q != "PRAGMA table_info(sales)" {
		t.Errorf("sqlite TableInfo() = %q", q)
	}
	if q, _ := mustDialect(t, config.DriverDuckDB).TableInfo("sales"); q != "DESCRIBE sales" {
		t.Errorf("duckdb TableInfo() = %q", q)
	}
}
