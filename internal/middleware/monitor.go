// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/salesreport/internal/logging"
)

// DefaultMonitorWindow is the number of recent requests RouteMonitor keeps.
const DefaultMonitorWindow = 1000

// DefaultSlowRequestThreshold is the latency above which a request is logged.
const DefaultSlowRequestThreshold = time.Second

// RequestSample is one observed request.
type RequestSample struct {
	Method   string
	Route    string
	Status   int
	Duration time.Duration
	At       time.Time
}

// RouteStats aggregates the samples of one method and route pair.
type RouteStats struct {
	Route    string  `json:"route"`
	Requests int     `json:"requests"`
	Errors   int     `json:"errors"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
	MinMs    float64 `json:"min_ms"`
	MaxMs    float64 `json:"max_ms"`
}

// RouteMonitor keeps a sliding window of request latencies.
type RouteMonitor struct {
	mu            sync.RWMutex
	samples       []RequestSample
	window        int
	slowThreshold time.Duration
}

// NewRouteMonitor creates a monitor over the last window requests. A
// non-positive window uses DefaultMonitorWindow.
func NewRouteMonitor(window int) *RouteMonitor {
	if window <= 0 {
		window = DefaultMonitorWindow
	}
	return &RouteMonitor{
		samples:       make([]RequestSample, 0, window),
		window:        window,
		slowThreshold: DefaultSlowRequestThreshold,
	}
}

// Record adds a sample, evicting the oldest once the window is full.
func (m *RouteMonitor) Record(s RequestSample) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.samples) == m.window {
		copy(m.samples, m.samples[1:])
		m.samples = m.samples[:m.window-1]
	}
	m.samples = append(m.samples, s)
}

// Len returns the number of samples in the window.
func (m *RouteMonitor) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.samples)
}

// Stats returns per-route statistics, busiest route first.
func (m *RouteMonitor) Stats() []RouteStats {
	m.mu.RLock()
	byRoute := make(map[string][]RequestSample)
	for _, s := range m.samples {
		key := s.Method + " " + s.Route
		byRoute[key] = append(byRoute[key], s)
	}
	m.mu.RUnlock()

	stats := make([]RouteStats, 0, len(byRoute))
	for route, samples := range byRoute {
		durations := make([]time.Duration, len(samples))
		var total time.Duration
		errs := 0
		for i, s := range samples {
			durations[i] = s.Duration
			total += s.Duration
			if s.Status >= http.StatusInternalServerError {
				errs++
			}
		}
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

		stats = append(stats, RouteStats{
			Route:    route,
			Requests: len(samples),
			Errors:   errs,
			AvgMs:    ms(total / time.Duration(len(samples))),
			P50Ms:    ms(percentile(durations, 0.50)),
			P95Ms:    ms(percentile(durations, 0.95)),
			P99Ms:    ms(percentile(durations, 0.99)),
			MinMs:    ms(durations[0]),
			MaxMs:    ms(durations[len(durations)-1]),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Requests != stats[j].Requests {
			return stats[i].Requests > stats[j].Requests
		}
		return stats[i].Route < stats[j].Route
	})
	return stats
}

// Middleware records every request served by next.
func (m *RouteMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		sample := RequestSample{
			Method:   r.Method,
			Route:    routePattern(r),
			Status:   statusOf(ww),
			Duration: time.Since(start),
			At:       start,
		}
		m.Record(sample)

		if sample.Duration > m.slowThreshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", sample.Method).
				Str("route", sample.Route).
				Dur("duration", sample.Duration).
				Msg("Slow request detected")
		}
	})
}

// percentile uses the nearest-rank-below index on a sorted slice.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
