// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/config"
)

// Period is the bucket size for time-series reports.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// ParsePeriod maps a period name to a Period. Unknown names fall back to Monthly.
func ParsePeriod(s string) Period {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Daily:
		return Daily
	case Weekly:
		return Weekly
	default:
		return Monthly
	}
}

// Dialect renders the handful of SQL fragments that differ between the
// supported engines. Everything else is written in the common subset.
type Dialect struct {
	name string
}

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverDuckDB, config.DriverMySQL, config.DriverPostgres, config.DriverSQLite:
		return Dialect{name: driver}, nil
	}
	return Dialect{}, apperrors.Preconditionf("unknown database driver %q", driver)
}

// Name returns the configured driver name.
func (d Dialect) Name() string { return d.name }

// driverName is the database/sql driver registration name.
func (d Dialect) driverName() string {
	switch d.name {
	case config.DriverPostgres:
		return "pgx"
	case config.DriverSQLite:
		return "sqlite3"
	default:
		return d.name
	}
}

// numbered reports whether bind markers are $1, $2, ... rather than ?.
func (d Dialect) numbered() bool {
	return d.name == config.DriverDuckDB || d.name == config.DriverPostgres
}

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d.numbered() {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Today is the current date.
func (d Dialect) Today() string {
	switch d.name {
	case config.DriverMySQL:
		return "CURDATE()"
	case config.DriverSQLite:
		return "date('now')"
	default:
		return "CURRENT_DATE"
	}
}

// DateOf truncates a timestamp expression to its date.
func (d Dialect) DateOf(expr string) string {
	switch d.name {
	case config.DriverMySQL:
		return "DATE(" + expr + ")"
	case config.DriverSQLite:
		return "date(" + expr + ")"
	default:
		return "CAST(" + expr + " AS DATE)"
	}
}

// DaysBetween is the whole number of days from earlier to later.
func (d Dialect) DaysBetween(later, earlier string) string {
	switch d.name {
	case config.DriverDuckDB:
		return fmt.Sprintf("date_diff('day', CAST(%s AS DATE), CAST(%s AS DATE))", earlier, later)
	case config.DriverMySQL:
		return fmt.Sprintf("DATEDIFF(%s, %s)", later, earlier)
	case config.DriverSQLite:
		return fmt.Sprintf("CAST(julianday(date(%s)) - julianday(date(%s)) AS INTEGER)", later, earlier)
	default:
		return fmt.Sprintf("(CAST(%s AS DATE) - CAST(%s AS DATE))", later, earlier)
	}
}

// Bucket formats a timestamp as a sortable period label: 2024-03-09 for
// daily, 2024-10 (year and week number) for weekly and 2024-03 for monthly.
func (d Dialect) Bucket(p Period, expr string) string {
	type formats struct{ daily, weekly, monthly string }
	var f formats
	var render func(expr, format string) string

	switch d.name {
	case config.DriverMySQL:
		f = formats{"%Y-%m-%d", "%x-%v", "%Y-%m"}
		render = func(e, fm string) string { return fmt.Sprintf("DATE_FORMAT(%s, '%s')", e, fm) }
	case config.DriverPostgres:
		f = formats{"YYYY-MM-DD", "IYYY-IW", "YYYY-MM"}
		render = func(e, fm string) string { return fmt.Sprintf("to_char(%s, '%s')", e, fm) }
	case config.DriverSQLite:
		f = formats{"%Y-%m-%d", "%Y-%W", "%Y-%m"}
		render = func(e, fm string) string { return fmt.Sprintf("strftime('%s', %s)", fm, e) }
	default:
		f = formats{"%Y-%m-%d", "%Y-%W", "%Y-%m"}
		render = func(e, fm string) string { return fmt.Sprintf("strftime(%s, '%s')", e, fm) }
	}

	switch p {
	case Daily:
		return render(expr, f.daily)
	case Weekly:
		return render(expr, f.weekly)
	default:
		return render(expr, f.monthly)
	}
}

// Year extracts the calendar year as an integer.
func (d Dialect) Year(expr string) string {
	switch d.name {
	case config.DriverPostgres:
		return "CAST(EXTRACT(YEAR FROM " + expr + ") AS INTEGER)"
	case config.DriverSQLite:
		return "CAST(strftime('%Y', " + expr + ") AS INTEGER)"
	default:
		return "YEAR(" + expr + ")"
	}
}

// Month extracts the month number, 1 to 12.
func (d Dialect) Month(expr string) string {
	switch d.name {
	case config.DriverPostgres:
		return "CAST(EXTRACT(MONTH FROM " + expr + ") AS INTEGER)"
	case config.DriverSQLite:
		return "CAST(strftime('%m', " + expr + ") AS INTEGER)"
	default:
		return "MONTH(" + expr + ")"
	}
}

// MonthName returns the English month name.
func (d Dialect) MonthName(expr string) string {
	switch d.name {
	case config.DriverPostgres:
		return "to_char(" + expr + ", 'FMMonth')"
	case config.DriverSQLite:
		var b strings.Builder
		b.WriteString("CASE " + d.Month(expr))
		for m := time.January; m <= time.December; m++ {
			fmt.Fprintf(&b, " WHEN %d THEN '%s'", m, m)
		}
		b.WriteString(" END")
		return b.String()
	default:
		return "MONTHNAME(" + expr + ")"
	}
}

// Explain prefixes a statement so that it returns its query plan.
func (d Dialect) Explain(stmt string) string {
	if d.name == config.DriverSQLite {
		return "EXPLAIN QUERY PLAN " + stmt
	}
	return "EXPLAIN " + stmt
}

// TimestampType is the column type used for date-times.
func (d Dialect) TimestampType() string {
	if d.name == config.DriverMySQL {
		return "DATETIME"
	}
	return "TIMESTAMP"
}

// MoneyType is the column type for prices and amounts. DuckDB stores them as
// DOUBLE so that float parameters bind without a decimal conversion.
func (d Dialect) MoneyType() string {
	if d.name == config.DriverDuckDB {
		return "DOUBLE"
	}
	return "DECIMAL(10, 2)"
}

// CreateIndex renders an idempotent CREATE INDEX where the engine allows it.
// MySQL has no IF NOT EXISTS for indexes; duplicates are ignored by the caller.
func (d Dialect) CreateIndex(name, table string, columns ...string) string {
	cols := strings.Join(columns, ", ")
	if d.name == config.DriverMySQL {
		return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", name, table, cols)
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, cols)
}

// CreateView renders a CREATE VIEW that succeeds when the view exists.
func (d Dialect) CreateView(name, body string) string {
	if d.name == config.DriverSQLite {
		return fmt.Sprintf("CREATE VIEW IF NOT EXISTS %s AS\n%s", name, body)
	}
	return fmt.Sprintf("CREATE OR REPLACE VIEW %s AS\n%s", name, body)
}

// TableInfo returns the statement that describes a table's columns. The
// table name must already be a validated identifier.
func (d Dialect) TableInfo(tableName string) (string, map[string]any) {
	switch d.name {
	case config.DriverPostgres:
		return `SELECT column_name, data_type, is_nullable, column_default
FROM information_schema.columns
WHERE table_name = :table_name
ORDER BY ordinal_position`, map[string]any{"table_name": tableName}
	case config.DriverSQLite:
		return "PRAGMA table_info(" + tableName + ")", nil
	default:
		return "DESCRIBE " + tableName, nil
	}
}
