// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/salesreport/internal/analysis"
	"github.com/tomtom215/salesreport/internal/auth"
	"github.com/tomtom215/salesreport/internal/config"
	"github.com/tomtom215/salesreport/internal/database"
)

const testJWTSecret = "router_test_secret_that_is_long_enough_123"

// envelope is APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func setupSeededDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(config.DatabaseConfig{Driver: config.DriverDuckDB, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Seed(context.Background(), database.SeedOptions{})
	require.NoError(t, err)
	return db
}

func newTestServer(t *testing.T, db *database.DB, jwt *auth.JWTManager, mw *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	if mw == nil {
		mw = DefaultChiMiddlewareConfig()
		mw.RateLimitRequests = 0
	}
	h := NewHandler(db, &config.Config{}, HandlerOptions{Version: "test"})
	return NewRouter(h, jwt, NewChiMiddleware(mw)).Setup()
}

func get(t *testing.T, srv http.Handler, path string, header ...string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		t.Run(path, func(t *testing.T) {
			code, env := get(t, srv, path)
			assert.Equal(t, http.StatusOK, code)
			assert.True(t, env.Success)
		})
	}

	_, env := get(t, srv, "/api/v1/health")
	var health HealthStatus
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.True(t, health.DatabaseConnected)
	assert.Equal(t, "duckdb(:memory:)", health.Database)
}

func TestRouter_RequestIDInEnvelope(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	_, env := get(t, srv, "/api/v1/health/live", "X-Request-ID", "req-42")
	require.NotNil(t, env.Meta)
	assert.Equal(t, "req-42", env.Meta.RequestID)
}

func TestRouter_Strategies(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	code, env := get(t, srv, "/api/v1/strategies")
	require.Equal(t, http.StatusOK, code)

	var infos []StrategyInfo
	require.NoError(t, json.Unmarshal(env.Data, &infos))
	keys := make([]string, len(infos))
	for i, info := range infos {
		keys[i] = info.Key
		assert.NotEmpty(t, info.Name)
	}
	assert.Equal(t, analysis.DefaultFactory().AvailableStrategies(), keys)
}

func TestRouter_Analyze(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	t.Run("revenue over sales", func(t *testing.T) {
		code, env := get(t, srv, "/api/v1/analysis/revenue")
		require.Equal(t, http.StatusOK, code)

		var m map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &m))
		assert.EqualValues(t, database.DefaultSeedSales, m["total_transactions"])
		assert.Greater(t, m["total_revenue"], 0.0)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		code, env := get(t, srv, "/api/v1/analysis/astrology")
		assert.Equal(t, http.StatusNotFound, code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Message, "astrology")
	})

	t.Run("missing column", func(t *testing.T) {
		code, env := get(t, srv, "/api/v1/analysis/revenue?table=countries")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, env.Error.Message, "total_price")
	})

	t.Run("injection in table name", func(t *testing.T) {
		code, _ := get(t, srv, "/api/v1/analysis/revenue?table=sales%3B%20DROP%20TABLE%20sales")
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestRouter_Compare(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	code, env := get(t, srv, "/api/v1/analysis/compare?strategies=revenue,quantity")
	require.Equal(t, http.StatusOK, code)

	var results map[string]map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 2)
	for name, m := range results {
		assert.NotContains(t, m, "error", "strategy %s failed", name)
	}

	code, _ = get(t, srv, "/api/v1/analysis/compare")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, srv, "/api/v1/analysis/compare?strategies=revenue,tarot")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_Reports(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	code, env := get(t, srv, "/api/v1/reports")
	require.Equal(t, http.StatusOK, code)
	var infos []ReportInfo
	require.NoError(t, json.Unmarshal(env.Data, &infos))
	assert.Len(t, infos, len(ReportNames()))

	for _, name := range ReportNames() {
		t.Run(name, func(t *testing.T) {
			code, env := get(t, srv, "/api/v1/reports/"+name)
			assert.Equal(t, http.StatusOK, code, "error: %+v", env.Error)
			assert.True(t, env.Success)
		})
	}
}

func TestRouter_ReportParameters(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	t.Run("top customers limit", func(t *testing.T) {
		code, env := get(t, srv, "/api/v1/reports/top-customers?limit=3")
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, env.Meta.Rows)
		assert.Equal(t, 3, *env.Meta.Rows)
	})

	t.Run("purchase history for one customer", func(t *testing.T) {
		code, env := get(t, srv, "/api/v1/reports/purchase-history?customer_id=1")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1, *env.Meta.Rows)
	})

	t.Run("sales report with details", func(t *testing.T) {
		end := time.Now().UTC().Format(time.DateOnly)
		start := time.Now().UTC().AddDate(0, 0, -400).Format(time.DateOnly)
		code, env := get(t, srv, "/api/v1/reports/sales-report?details=true&start_date="+start+"&end_date="+end)
		require.Equal(t, http.StatusOK, code)

		var report struct {
			Summary map[string]any  `json:"summary"`
			Details json.RawMessage `json:"details"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &report))
		assert.EqualValues(t, database.DefaultSeedSales, report.Summary["total_transactions"])
		assert.NotEmpty(t, report.Details)
	})

	t.Run("inverted range", func(t *testing.T) {
		code, _ := get(t, srv, "/api/v1/reports/sales-report?start_date=2024-06-01&end_date=2024-01-01")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("bad year", func(t *testing.T) {
		code, env := get(t, srv, "/api/v1/reports/monthly-trend?year=last")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
	})

	for _, path := range []string{"top-customers?limit=-5", "top-products?limit=0"} {
		t.Run("limit "+path, func(t *testing.T) {
			code, env := get(t, srv, "/api/v1/reports/"+path)
			assert.Equal(t, http.StatusBadRequest, code)
			require.NotNil(t, env.Error)
			assert.Contains(t, env.Error.Message, "want a positive integer")
			assert.NotContains(t, env.Error.Message, "precondition failed")
		})
	}

	t.Run("unknown report", func(t *testing.T) {
		code, _ := get(t, srv, "/api/v1/reports/horoscope")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestRouter_CustomerLifetimeValue(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	code, env := get(t, srv, "/api/v1/customers/1/lifetime-value?months=24")
	require.Equal(t, http.StatusOK, code)
	var ltv LifetimeValue
	require.NoError(t, json.Unmarshal(env.Data, &ltv))
	assert.Equal(t, int64(1), ltv.CustomerID)
	assert.Equal(t, 24, ltv.Months)
	assert.GreaterOrEqual(t, ltv.LifetimeValue, 0.0)

	code, env = get(t, srv, "/api/v1/customers/99999/lifetime-value")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &ltv))
	assert.Zero(t, ltv.LifetimeValue)

	code, _ = get(t, srv, "/api/v1/customers/abc/lifetime-value")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_TableInfo(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	code, env := get(t, srv, "/api/v1/tables/sales")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 9, *env.Meta.Rows)

	code, _ = get(t, srv, "/api/v1/tables/invoices")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, srv, "/api/v1/tables/sales;drop")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_Authentication(t *testing.T) {
	manager, err := auth.NewJWTManager(testJWTSecret, time.Hour)
	require.NoError(t, err)
	token, err := manager.GenerateToken("report-viewer")
	require.NoError(t, err)

	srv := newTestServer(t, setupSeededDB(t), manager, nil)

	code, env := get(t, srv, "/api/v1/strategies")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, ErrCodeUnauthorized, env.Error.Code)

	code, _ = get(t, srv, "/api/v1/strategies", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, srv, "/api/v1/health")
	assert.Equal(t, http.StatusOK, code, "health must not require a token")
}

func TestRouter_RateLimit(t *testing.T) {
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitRequests = 2
	srv := newTestServer(t, setupSeededDB(t), nil, mw)

	for i := 0; i < 2; i++ {
		code, _ := get(t, srv, "/api/v1/health/live")
		require.Equal(t, http.StatusOK, code)
	}
	code, env := get(t, srv, "/api/v1/health/live")
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, ErrCodeTooManyRequests, env.Error.Code)
}

func TestRouter_NotFound(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	code, env := get(t, srv, "/api/v2/anything")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

func TestRouter_Stats(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)

	get(t, srv, "/api/v1/strategies")
	get(t, srv, "/api/v1/strategies")

	code, env := get(t, srv, "/api/v1/stats")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"GET /api/v1/strategies"`)
}

func TestRouter_MetricsAndSwagger(t *testing.T) {
	srv := newTestServer(t, setupSeededDB(t), nil, nil)
	get(t, srv, "/api/v1/health/live")

	tests := []struct {
		path string
		want string
	}{
		{"/metrics", "salesreport_http_requests_total"},
		{"/swagger/doc.json", "Salesreport API"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			body, err := io.ReadAll(rec.Body)
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(body), tt.want), "body does not contain %q", tt.want)
		})
	}
}
