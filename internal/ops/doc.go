// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package ops provides composable wrappers around database operations.

An operation is a Func: it receives a Call describing what is being executed
and returns a typed result. Wrappers add a single cross-cutting concern each
(timing, logging, caching, retry, error classification, circuit breaking and
rate limiting) and compose with Chain, outermost first:

	run := ops.Chain(
	    ops.Logging[*table.Table](nil),
	    ops.Timing[*table.Table](nil),
	    ops.Retry[*table.Table](3, time.Second),
	)(db.ExecuteCall)

DatabaseOperation assembles the standard stack from Options.
*/
package ops
