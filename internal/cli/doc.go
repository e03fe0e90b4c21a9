// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

// Package cli implements the salesreport command line.
//
// Every command loads the layered configuration (defaults, YAML file,
// environment) before it runs, so the same settings drive the CLI and the
// HTTP server:
//
//	salesreport seed --reset
//	salesreport analyze revenue
//	salesreport compare revenue product
//	salesreport report top-customers --param limit=5
//	salesreport query "SELECT * FROM sales WHERE quantity > :q" --param q=3
//	salesreport serve
//
// Results print as aligned text by default, or as JSON with --format json.
// An in-memory database is seeded on open; otherwise seed explicitly or
// set database.seed.
package cli
