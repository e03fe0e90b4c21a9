// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package api serves the read-only reporting HTTP API.

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "BAD_REQUEST", "message": "..."}, "meta": {...}}

Routes (prefix /api/v1):

  - GET /health, /health/live, /health/ready
  - GET /strategies
  - GET /analysis/{strategy}?table=sales
  - GET /analysis/compare?strategies=revenue,quantity
  - GET /reports and /reports/{name}
  - GET /customers/{id}/lifetime-value?months=12
  - GET /tables/{name}
  - GET /stats

/metrics serves Prometheus collectors and /swagger/ the Swagger UI.

Error Mapping:

  - unknown strategies, reports and tables: 404
  - other precondition failures (bad parameters, missing columns): 400
  - database connectivity failures: 503
  - anything else: 500

Authentication:

When server.jwt_secret is set every /api/v1 route except health requires an
HS256 bearer token (see internal/auth). Requests are rate-limited per client
IP with go-chi/httprate and CORS is handled by go-chi/cors.
*/
package api
