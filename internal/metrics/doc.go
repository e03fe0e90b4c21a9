// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package metrics provides Prometheus collectors for Salesreport.

Collectors are registered with the default registry through promauto and
exposed by the HTTP API at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Database:
  - salesreport_db_query_duration_seconds{operation}: query latency (histogram)
  - salesreport_db_query_errors_total{operation}: failed queries (counter)

Operation wrappers:
  - salesreport_operation_duration_seconds{operation}: wrapped call latency (histogram)
  - salesreport_cache_hits_total{cache}, salesreport_cache_misses_total{cache}
  - salesreport_retry_attempts_total{operation}: attempts after the first (counter)
  - salesreport_circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open (gauge)
  - salesreport_circuit_breaker_transitions_total{name,from,to}

Analysis:
  - salesreport_analysis_duration_seconds{strategy}

HTTP:
  - salesreport_http_requests_total{method,route,status}
  - salesreport_http_request_duration_seconds{method,route}
  - salesreport_http_requests_in_flight

# Usage

Record helpers are safe for concurrent use:

	start := time.Now()
	t, err := db.ExecuteQuery(ctx, sql, params)
	metrics.RecordDBQuery("execute_query", time.Since(start), err)
*/
package metrics
