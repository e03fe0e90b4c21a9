// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

//go:build integration

/*
Package testinfra starts throwaway database servers for integration tests
with testcontainers-go.

Tests using it carry the integration build tag and skip when Docker is not
available:

	//go:build integration

	func TestReports_MySQL(t *testing.T) {
	    testinfra.SkipIfNoDocker(t)
	    ctx := context.Background()
	    mysql, err := testinfra.NewMySQLContainer(ctx)
	    if err != nil {
	        t.Fatal(err)
	    }
	    testinfra.CleanupContainer(t, ctx, mysql)

	    db, err := database.Open(ctx, mysql.DatabaseConfig())
	    ...
	}

Run with:

	go test -tags integration ./...
*/
package testinfra
