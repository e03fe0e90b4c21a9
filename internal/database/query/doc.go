// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

// Package query provides SQL query construction for the database package.
//
// # Overview
//
// Builder is a fluent accumulator of SELECT clauses. Every mutating call
// returns the same builder, Build renders the current state without changing
// it, and Reset returns the builder to its empty state so one instance can be
// reused:
//
//	sql, err := query.NewBuilder().
//	    Select("a", "b").
//	    FromTable("t").
//	    Where("x>1").
//	    OrderBy("a", "").
//	    Build()
//	// SELECT a, b
//	// FROM t
//	// WHERE x>1
//	// ORDER BY a ASC
//
// Clauses are always rendered in the order SELECT, FROM, JOINs, WHERE,
// GROUP BY, HAVING, ORDER BY, LIMIT. Empty clauses are omitted. Build fails
// with ErrSelectRequired or ErrFromRequired; no other validation is done.
//
// # Textual and Bound Predicates
//
// Where, WhereEquals, WhereIn and WhereBetween render values into the SQL
// text. String values are single-quoted but not escaped, so these methods
// must only receive trusted values.
//
// WhereArg appends a predicate with ? markers and records its values.
// BuildWithArgs returns them in marker order:
//
//	sql, args, err := query.NewBuilder().
//	    Select("*").
//	    FromTable("sales").
//	    WhereArg("customer_id = ?", id).
//	    BuildWithArgs()
//
// WhereBuilder collects optional filters and hands them to a Builder, or
// renders a bare WHERE clause for hand-written SQL:
//
//	wb := query.NewWhereBuilder().AddWindow("s.sale_date", from, until)
//	query.AddEquals(wb, "p.category_id", opts.CategoryID)
//	b.WhereClause(wb)
//
// # Director
//
// Director produces the canned report shapes (sales by category, top
// customers, monthly trend). Each preset resets its builder first, so presets
// are independent and repeatable on one instance.
//
// # Thread Safety
//
// Builder, WhereBuilder and Director are not thread-safe. Create one per
// goroutine.
package query
