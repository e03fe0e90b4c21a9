// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package api

import (
	"context"
	"net/http"
	"time"
)

// healthCheckTimeout bounds the database ping of a health request.
const healthCheckTimeout = 2 * time.Second

// HealthStatus is the /health payload.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	Database          string  `json:"database"`
	DatabaseConnected bool    `json:"database_connected"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// Health godoc
// @Summary Get service health
// @Description Reports database connectivity, version and uptime. Always 200; status is "degraded" when the database is unreachable.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.pingDatabase(r.Context())

	status := "healthy"
	if !connected {
		status = "degraded"
	}

	health := HealthStatus{
		Status:            status,
		Version:           h.version,
		DatabaseConnected: connected,
		UptimeSeconds:     time.Since(h.startTime).Seconds(),
	}
	if h.db != nil {
		health.Database = h.db.Config().String()
	}
	NewResponseWriter(w, r).Success(health)
}

// HealthLive godoc
// @Summary Liveness probe
// @Description Returns 200 while the process is serving requests.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady godoc
// @Summary Readiness probe
// @Description Returns 200 when the database answers, 503 otherwise.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.pingDatabase(r.Context()) {
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "database unavailable")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}

func (h *Handler) pingDatabase(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return h.db.Ping(ctx) == nil
}
