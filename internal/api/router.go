// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tomtom215/salesreport/internal/api/docs" // registers the Swagger spec
	"github.com/tomtom215/salesreport/internal/auth"
	"github.com/tomtom215/salesreport/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	jwtManager    *auth.JWTManager
}

// NewRouter creates a router. jwtManager may be nil to disable
// authentication; mw may be nil for the defaults.
func NewRouter(handler *Handler, jwtManager *auth.JWTManager, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		jwtManager:    jwtManager,
	}
}

// Setup returns the HTTP handler serving every route.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.handler.monitor.Middleware)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("no route for " + req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		// Health probes stay reachable without a token
		r.Route("/health", func(r chi.Router) {
			r.Get("/", router.handler.Health)
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(router.jwtManager, func(w http.ResponseWriter, req *http.Request, message string) {
				NewResponseWriter(w, req).Unauthorized(message)
			}))

			r.Get("/strategies", router.handler.Strategies)
			r.Get("/analysis/compare", router.handler.Compare)
			r.Get("/analysis/{strategy}", router.handler.Analyze)
			r.Get("/reports", router.handler.Reports)
			r.Get("/reports/{name}", router.handler.Report)
			r.Get("/customers/{id}/lifetime-value", router.handler.CustomerLifetimeValue)
			r.Get("/tables/{name}", router.handler.TableInfo)
			r.Get("/stats", router.handler.Stats)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
