// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
Package supervisor runs the long-lived parts of "salesreport serve" under a
suture v4 supervisor tree.

	RootSupervisor ("salesreport")
	├── DataSupervisor ("data-layer")
	│   ├── database-monitor (periodic ping, reconnects a dropped pool)
	│   └── cache-janitor (drops expired result cache entries)
	└── APISupervisor ("api-layer")
	    └── http-server

A crashed service is restarted with suture's backoff; a failure in the data
layer does not stop the HTTP server. Supervisor events are logged through
sutureslog onto the zerolog-backed slog handler from internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.AddDataService(services.NewDatabaseMonitor(db, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx) // blocks until ctx is canceled
*/
package supervisor
