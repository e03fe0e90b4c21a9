// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestRouteMonitor_Stats(t *testing.T) {
	t.Parallel()
	m := NewRouteMonitor(10)

	for i := 1; i <= 4; i++ {
		m.Record(RequestSample{Method: "GET", Route: "/a", Status: 200, Duration: time.Duration(i) * time.Millisecond})
	}
	m.Record(RequestSample{Method: "GET", Route: "/b", Status: 500, Duration: 10 * time.Millisecond})

	stats := m.Stats()
	if len(stats) != 2 {
		t.Fatalf("len(Stats()) = %d, want 2", len(stats))
	}

	a := stats[0]
	if a.Route != "GET /a" || a.Requests != 4 || a.Errors != 0 {
		t.Errorf("stats[0] = %+v", a)
	}
	if a.MinMs != 1 || a.MaxMs != 4 || a.AvgMs != 2.5 {
		t.Errorf("min/max/avg = %v/%v/%v, want 1/4/2.5", a.MinMs, a.MaxMs, a.AvgMs)
	}
	if a.P50Ms != 2 {
		t.Errorf("p50 = %v, want 2", a.P50Ms)
	}

	b := stats[1]
	if b.Route != "GET /b" || b.Errors != 1 {
		t.Errorf("stats[1] = %+v", b)
	}
}

func TestRouteMonitor_WindowEvictsOldest(t *testing.T) {
	t.Parallel()
	m := NewRouteMonitor(3)

	for i := 0; i < 5; i++ {
		m.Record(RequestSample{Method: "GET", Route: "/a", Duration: time.Duration(i) * time.Millisecond})
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if lowest := m.Stats()[0].MinMs; lowest != 2 {
		t.Errorf("oldest retained sample = %vms, want 2ms", lowest)
	}
}

func TestRouteMonitor_DefaultWindow(t *testing.T) {
	t.Parallel()
	if m := NewRouteMonitor(0); m.window != DefaultMonitorWindow {
		t.Errorf("window = %d, want %d", m.window, DefaultMonitorWindow)
	}
}

func TestRouteMonitor_Middleware(t *testing.T) {
	t.Parallel()
	m := NewRouteMonitor(100)
	router := newTestRouter(m.Middleware)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/reports/dashboard", nil))
		}()
	}
	wg.Wait()

	stats := m.Stats()
	if len(stats) != 1 {
		t.Fatalf("len(Stats()) = %d, want 1", len(stats))
	}
	if stats[0].Route != "GET /api/v1/reports/{name}" || stats[0].Requests != 20 {
		t.Errorf("stats = %+v", stats[0])
	}
}
