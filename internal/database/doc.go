// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package database owns the SQL connection pool and everything that talks to it.

A DB is opened once from configuration and passed by reference to the
analysis engine, the CLI and the HTTP API. It supports DuckDB (the default,
also used in memory by every test), MySQL, PostgreSQL and SQLite through
database/sql, with a Dialect covering the fragments that differ.

Query results come back as *table.Table. Statements take :name
placeholders, rewritten per dialect by BindNamed:

	t, err := db.ExecuteQuery(ctx,
	    "SELECT * FROM sales WHERE customer_id = :id", map[string]any{"id": 7})

Beyond raw queries the package provides:

  - EnsureSchema and Seed: the sales schema, its reporting view and
    deterministic sample data
  - Analytics: CTE and window-function reports (sales performance, RFM
    segmentation, product trends, dashboard)
  - Examples: the everyday reports built on the convenience helpers
  - Objects: lifetime value, the sales report, purchase history and plans
  - Executor: a DB behind an ops wrapper stack (logging, timing, caching,
    retry, error classification)

Errors that mean the database is unreachable are recognized by
IsConnectionError; Ping reconnects with backoff when it sees one.
*/
package database
