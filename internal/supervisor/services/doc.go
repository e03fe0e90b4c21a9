// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package services adapts salesreport components to suture.Service.

Each wrapper implements

	Serve(ctx context.Context) error

and fmt.Stringer so supervisor events name the service.

  - HTTPServerService: runs an *http.Server, shutting it down gracefully when
    the context is canceled.
  - PeriodicService: runs a task on a fixed interval. NewDatabaseMonitor and
    NewCacheJanitor build the two the serve command uses.
*/
package services
