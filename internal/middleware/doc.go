// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package middleware provides chi-compatible HTTP middleware for the reporting
API.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request counts and latency labelled by chi route pattern
  - AccessLog: one structured zerolog line per request
  - RouteMonitor: in-process latency percentiles per route, served at
    /api/v1/stats

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)

Routes are labelled with the matched pattern ("/api/v1/reports/{name}"), never
the raw path, so metric cardinality stays bounded. Requests that match no route
are labelled "unmatched".

See Also:

  - internal/api: router and handlers
  - internal/metrics: Prometheus collector definitions
*/
package middleware
