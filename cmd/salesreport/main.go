// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

// Package main is the entry point for the salesreport command.
//
// Salesreport builds SQL reports and statistical analyses over a sales
// database and serves them over a REST API.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (DB_DRIVER, DB_HOST, JWT_SECRET, ...)
//   - Config file (--config, CONFIG_PATH or ./config.yaml)
//   - Built-in defaults (in-memory DuckDB with sample data)
//
// # Example Usage
//
// Local exploration against the built-in sample data:
//
//	salesreport compare
//	salesreport report top-customers --param limit=5
//
// Production against MySQL:
//
//	export DB_DRIVER=mysql DB_HOST=db DB_USER=report DB_PASSWORD=secret
//	export JWT_SECRET=$(openssl rand -base64 32)
//	salesreport serve
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tomtom215/salesreport/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
