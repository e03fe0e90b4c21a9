// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		err       error
		wantErrs  float64
	}{
		{name: "success", operation: "test_select_ok", wantErrs: 0},
		{name: "failure", operation: "test_select_fail", err: errors.New("connection refused"), wantErrs: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, 10*time.Millisecond, tt.err)

			if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation)); got != tt.wantErrs {
				t.Errorf("errors = %v, want %v", got, tt.wantErrs)
			}
			if got := testutil.CollectAndCount(DBQueryDuration); got == 0 {
				t.Error("expected duration histogram to have series")
			}
		})
	}
}

func TestCacheCounters(t *testing.T) {
	RecordCacheHit("test_cache")
	RecordCacheHit("test_cache")
	RecordCacheMiss("test_cache")

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("test_cache")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("test_cache")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
}

func TestCircuitBreakerMetrics(t *testing.T) {
	SetCircuitBreakerState("test_breaker", 2)
	RecordCircuitBreakerTransition("test_breaker", "closed", "open")

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test_breaker")); got != 2 {
		t.Errorf("state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues("test_breaker", "closed", "open")); got != 1 {
		t.Errorf("transitions = %v, want 1", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", "/test/{id}", 404, time.Millisecond)

	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/test/{id}", "404")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsInFlight)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(HTTPRequestsInFlight); got != before+1 {
		t.Errorf("in flight = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(HTTPRequestsInFlight); got != before {
		t.Errorf("in flight = %v, want %v", got, before)
	}
}

func TestRetryAndAnalysis(t *testing.T) {
	RecordRetryAttempt("test_retry")
	RecordAnalysis("test_strategy", time.Millisecond)
	RecordOperation("test_op", time.Millisecond)

	if got := testutil.ToFloat64(RetryAttempts.WithLabelValues("test_retry")); got != 1 {
		t.Errorf("retry attempts = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(AnalysisDuration); got == 0 {
		t.Error("expected analysis histogram series")
	}
}
