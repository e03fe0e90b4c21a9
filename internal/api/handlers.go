// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package api

import (
	"time"

	"github.com/tomtom215/salesreport/internal/analysis"
	"github.com/tomtom215/salesreport/internal/config"
	"github.com/tomtom215/salesreport/internal/database"
	"github.com/tomtom215/salesreport/internal/middleware"
)

// Handler holds the dependencies of every endpoint.
type Handler struct {
	db        *database.DB
	q         database.Querier
	analytics *database.Analytics
	examples  *database.Examples
	objects   *database.Objects
	factory   *analysis.Factory
	config    *config.Config
	monitor   *middleware.RouteMonitor
	version   string
	startTime time.Time
}

// HandlerOptions are the optional Handler dependencies.
type HandlerOptions struct {
	// Querier runs report queries, typically db.Wrapped(...). Defaults to db.
	Querier database.Querier

	// Factory resolves strategy keys. Defaults to analysis.DefaultFactory().
	Factory *analysis.Factory

	// Monitor backs /api/v1/stats. Defaults to a new RouteMonitor.
	Monitor *middleware.RouteMonitor

	// Version is reported by the health endpoint.
	Version string
}

// NewHandler creates the API handler. db is used for health checks and table
// metadata; reports run on opts.Querier.
func NewHandler(db *database.DB, cfg *config.Config, opts HandlerOptions) *Handler {
	q := opts.Querier
	if q == nil {
		q = db
	}
	factory := opts.Factory
	if factory == nil {
		factory = analysis.DefaultFactory()
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = middleware.NewRouteMonitor(middleware.DefaultMonitorWindow)
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	return &Handler{
		db:        db,
		q:         q,
		analytics: database.NewAnalytics(q),
		examples:  database.NewExamples(q),
		objects:   database.NewObjects(q),
		factory:   factory,
		config:    cfg,
		monitor:   monitor,
		version:   version,
		startTime: time.Now(),
	}
}
