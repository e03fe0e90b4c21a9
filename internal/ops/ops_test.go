// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/cache"
	"github.com/tomtom215/salesreport/internal/config"
	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/table"
)

// record returns a wrapper that appends "name>" before and "<name" after the call.
func record(trace *[]string, name string) Wrapper[int] {
	return func(next Func[int]) Func[int] {
		return func(ctx context.Context, call Call) (int, error) {
			*trace = append(*trace, name+">")
			v, err := next(ctx, call)
			*trace = append(*trace, "<"+name)
			return v, err
		}
	}
}

func TestChain_Order(t *testing.T) {
	var trace []string
	fn := Chain(record(&trace, "a"), nil, record(&trace, "b"))(func(context.Context, Call) (int, error) {
		trace = append(trace, "op")
		return 1, nil
	})

	if _, err := fn(context.Background(), NewCall("x")); err != nil {
		t.Fatal(err)
	}
	want := []string{"a>", "b>", "op", "<b", "<a"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestTiming_SetsElapsedAndObserves(t *testing.T) {
	var observed string
	var took time.Duration
	data := table.FromColumn("total_price", 1.0)

	fn := Timing[*table.Table](func(name string, d time.Duration) {
		observed, took = name, d
	})(func(context.Context, Call) (*table.Table, error) {
		time.Sleep(5 * time.Millisecond)
		return data, nil
	})

	got, err := fn(context.Background(), NewCall("execute_query"))
	if err != nil {
		t.Fatal(err)
	}
	if observed != "execute_query" {
		t.Errorf("observed name = %q", observed)
	}
	if got.Elapsed < 5*time.Millisecond || got.Elapsed != took {
		t.Errorf("Elapsed = %v, observed %v", got.Elapsed, took)
	}
	if got.Len() != 1 || got.Rows[0][0] != 1.0 {
		t.Error("timing must not change the data")
	}
}

func TestTiming_DoesNotWriteCachedTables(t *testing.T) {
	c := cache.NewLRUCache(10, 0)
	fn := Chain(
		Timing[*table.Table](func(string, time.Duration) {}),
		Caching[*table.Table](c),
	)(func(context.Context, Call) (*table.Table, error) {
		return table.FromColumn("total_price", 1.0, 2.0), nil
	})

	ctx := context.Background()
	if _, err := fn(ctx, NewCall("execute_query", "SELECT 1")); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]*table.Table, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := fn(ctx, NewCall("execute_query", "SELECT 1"))
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = got
		}()
	}
	wg.Wait()

	cached, ok := c.Get(cache.GenerateKey("execute_query", []any{"SELECT 1"}, nil))
	if !ok {
		t.Fatal("result was not cached")
	}
	stored := cached.(*table.Table)
	if stored.Elapsed != 0 {
		t.Errorf("cached table Elapsed = %v, want 0", stored.Elapsed)
	}
	for i, got := range results {
		if got == stored {
			t.Errorf("call %d returned the cached pointer", i)
		}
		if got != nil && got.Len() != 2 {
			t.Errorf("call %d Len() = %d, want 2", i, got.Len())
		}
	}
}

func debugLevel(t *testing.T) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func TestLogging_RedactsCredentials(t *testing.T) {
	debugLevel(t)
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	fn := Logging[*table.Table](&logger)(func(context.Context, Call) (*table.Table, error) {
		return table.FromColumn("a", 1, 2), nil
	})
	call := Call{Name: "connect", Kwargs: map[string]any{"user": "root", "password": "hunter2"}}
	if _, err := fn(context.Background(), call); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("password leaked into log: %s", out)
	}
	if !strings.Contains(out, logging.Redacted) || !strings.Contains(out, "user=root") {
		t.Errorf("expected redacted kwargs in log: %s", out)
	}
	if !strings.Contains(out, "2 rows x 1 cols") {
		t.Errorf("expected result shape in log: %s", out)
	}
}

func TestLogging_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	fn := Logging[int](&logger)(func(context.Context, Call) (int, error) {
		return 0, errors.New("syntax error")
	})
	if _, err := fn(context.Background(), NewCall("bad")); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(buf.String(), "syntax error") {
		t.Errorf("expected failure in log: %s", buf.String())
	}
}

func TestCaching_HitsAndMisses(t *testing.T) {
	c := cache.NewLRUCache(DefaultCacheSize, 0)
	var calls int
	fn := Caching[int](c)(func(_ context.Context, call Call) (int, error) {
		calls++
		return call.Args[0].(int) * 2, nil
	})

	ctx := context.Background()
	for range 3 {
		v, err := fn(ctx, NewCall("double", 21))
		if err != nil || v != 42 {
			t.Fatalf("fn() = %v, %v", v, err)
		}
	}
	if _, err := fn(ctx, NewCall("double", 5)); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("underlying calls = %d, want 2", calls)
	}
	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 2 {
		t.Errorf("stats = %+v, want 2 hits and 2 misses", stats)
	}
}

func TestCaching_ErrorsAreNotStored(t *testing.T) {
	c := cache.NewLRUCache(10, 0)
	fail := true
	fn := Caching[int](c)(func(context.Context, Call) (int, error) {
		if fail {
			return 0, errors.New("boom")
		}
		return 7, nil
	})

	if _, err := fn(context.Background(), NewCall("op")); err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 0 {
		t.Errorf("failed result was cached")
	}
	fail = false
	if v, _ := fn(context.Background(), NewCall("op")); v != 7 {
		t.Errorf("fn() = %d, want 7", v)
	}
}

func TestCaching_ExpiredEntryIsMiss(t *testing.T) {
	c := cache.NewLRUCache(10, 10*time.Millisecond)
	var calls int
	fn := Caching[int](c)(func(context.Context, Call) (int, error) {
		calls++
		return calls, nil
	})

	first, _ := fn(context.Background(), NewCall("op"))
	time.Sleep(20 * time.Millisecond)
	second, _ := fn(context.Background(), NewCall("op"))
	if first == second || calls != 2 {
		t.Errorf("expired entry served from cache: first=%d second=%d", first, second)
	}
}

func TestErrorHandling_Classifies(t *testing.T) {
	refused := errors.New("dial tcp: connection refused")
	isConn := func(err error) bool { return strings.Contains(err.Error(), "connection refused") }

	tests := []struct {
		name     string
		cause    error
		wantConn bool
		wantMsg  string
	}{
		{"generic", errors.New("syntax error"), false, "database operation failed: syntax error"},
		{"driver connection", refused, true, "failed to connect to database: dial tcp: connection refused"},
		{"sentinel connection", apperrors.ErrConnectionFailed, true, "failed to connect to database: failed to connect to database: database operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := ErrorHandling[int](isConn)(func(context.Context, Call) (int, error) { return 0, tt.cause })
			_, err := fn(context.Background(), NewCall("q"))

			var opErr *OperationError
			if !errors.As(err, &opErr) {
				t.Fatalf("expected *OperationError, got %T", err)
			}
			if opErr.Connection != tt.wantConn {
				t.Errorf("Connection = %v, want %v", opErr.Connection, tt.wantConn)
			}
			if !errors.Is(err, apperrors.ErrOperationFailed) || !errors.Is(err, tt.cause) {
				t.Error("expected error to wrap ErrOperationFailed and the cause")
			}
			if errors.Is(err, apperrors.ErrConnectionFailed) != tt.wantConn {
				t.Errorf("errors.Is(ErrConnectionFailed) = %v", !tt.wantConn)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestErrorHandling_PassesSuccessAndDoesNotDoubleWrap(t *testing.T) {
	inner := &OperationError{Op: "inner", Err: errors.New("x")}
	fn := ErrorHandling[int](nil)(func(context.Context, Call) (int, error) { return 0, inner })
	if _, err := fn(context.Background(), NewCall("outer")); err != inner {
		t.Errorf("expected the original *OperationError, got %v", err)
	}

	ok := ErrorHandling[int](nil)(func(context.Context, Call) (int, error) { return 3, nil })
	if v, err := ok(context.Background(), NewCall("ok")); v != 3 || err != nil {
		t.Errorf("ok() = %v, %v", v, err)
	}
}

func TestRetry_StopsAfterMaxAttempts(t *testing.T) {
	var attempts int
	boom := errors.New("boom")
	fn := Retry[int](3, time.Millisecond)(func(context.Context, Call) (int, error) {
		attempts++
		return 0, boom
	})

	_, err := fn(context.Background(), NewCall("flaky"))
	if !errors.Is(err, boom) {
		t.Errorf("expected last error, got %v", err)
	}
	if attempts != 4 {
		t.Errorf("attempts = %d, want 4", attempts)
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	var attempts int
	fn := Retry[string](3, time.Millisecond)(func(context.Context, Call) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	v, err := fn(context.Background(), NewCall("flaky"))
	if err != nil || v != "ok" || attempts != 3 {
		t.Errorf("fn() = %q, %v after %d attempts", v, err, attempts)
	}
}

func TestRetry_NeverRetriesPreconditions(t *testing.T) {
	var attempts int
	fn := Retry[int](5, time.Millisecond)(func(context.Context, Call) (int, error) {
		attempts++
		return 0, apperrors.Preconditionf("bad input")
	})

	if _, err := fn(context.Background(), NewCall("x")); !apperrors.IsPrecondition(err) {
		t.Errorf("expected precondition error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_ContextCancelsSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fn := Retry[int](3, time.Hour)(func(context.Context, Call) (int, error) {
		cancel()
		return 0, errors.New("boom")
	})

	done := make(chan error, 1)
	go func() {
		_, err := fn(ctx, NewCall("x"))
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry sleep was not cancelled")
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test-breaker", 2, time.Hour)
	var calls int32
	fn := Breaker[int](cb)(func(context.Context, Call) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, errors.New("down")
	})

	for range 2 {
		_, _ = fn(context.Background(), NewCall("q"))
	}
	_, err := fn(context.Background(), NewCall("q"))
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected open state error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if cb.State() != gobreaker.StateOpen {
		t.Errorf("State() = %v, want open", cb.State())
	}
}

func TestBreaker_PreconditionsDoNotTrip(t *testing.T) {
	cb := NewCircuitBreaker("test-precondition", 1, time.Hour)
	fn := Breaker[int](cb)(func(context.Context, Call) (int, error) {
		return 0, apperrors.Preconditionf("bad")
	})
	for range 3 {
		_, _ = fn(context.Background(), NewCall("q"))
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", cb.State())
	}
}

func TestBreaker_PreconditionResetsFailureRun(t *testing.T) {
	cb := NewCircuitBreaker("test-reset", 2, time.Hour)
	errs := []error{errors.New("down"), apperrors.Preconditionf("bad"), errors.New("down")}
	var i int
	fn := Breaker[int](cb)(func(context.Context, Call) (int, error) {
		err := errs[i]
		i++
		return 0, err
	})
	for range errs {
		_, _ = fn(context.Background(), NewCall("q"))
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", cb.State())
	}
	if got := cb.Counts().ConsecutiveFailures; got != 1 {
		t.Errorf("ConsecutiveFailures = %d, want 1", got)
	}
}

func TestBreakerSuccess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"precondition", apperrors.Preconditionf("bad limit"), true},
		{"wrapped precondition", fmt.Errorf("query: %w", apperrors.ErrPrecondition), true},
		{"failure", errors.New("down"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := breakerSuccess(tt.err); got != tt.want {
				t.Errorf("breakerSuccess(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRateLimit_HonorsContext(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	fn := RateLimit[int](limiter)(func(context.Context, Call) (int, error) { return 1, nil })

	if v, err := fn(context.Background(), NewCall("q")); v != 1 || err != nil {
		t.Fatalf("first call = %v, %v", v, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := fn(ctx, NewCall("q")); err == nil {
		t.Error("expected the second call to be rejected by the limiter")
	}
}

func TestDatabaseOperation_Composition(t *testing.T) {
	c := cache.NewLRUCache(10, 0)
	var attempts int
	fn := DatabaseOperation[*table.Table](Options{
		Observer:   func(string, time.Duration) {},
		Cache:      c,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})(func(context.Context, Call) (*table.Table, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("transient")
		}
		return table.FromColumn("n", 1), nil
	})

	ctx := context.Background()
	first, err := fn(ctx, NewCall("execute_query", "SELECT 1"))
	if err != nil {
		t.Fatal(err)
	}
	if first.Elapsed == 0 {
		t.Error("timing should set Elapsed on the outer result")
	}
	if _, err := fn(ctx, NewCall("execute_query", "SELECT 1")); err != nil {
		t.Fatal(err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2 (one retry, then cache hit)", attempts)
	}
	if c.Stats().Hits != 1 {
		t.Errorf("cache hits = %d, want 1", c.Stats().Hits)
	}
}

func TestDatabaseOperation_ErrorsAreClassifiedInsideRetry(t *testing.T) {
	var seen []error
	spy := func(next Func[int]) Func[int] {
		return func(ctx context.Context, call Call) (int, error) {
			v, err := next(ctx, call)
			seen = append(seen, err)
			return v, err
		}
	}
	inner := DatabaseOperation[int](Options{MaxRetries: 1, RetryDelay: time.Millisecond})
	fn := Chain(spy, inner)(func(context.Context, Call) (int, error) {
		return 0, errors.New("boom")
	})

	_, err := fn(context.Background(), NewCall("q"))
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *OperationError, got %T", err)
	}
	if len(seen) != 1 {
		t.Errorf("outer wrapper saw %d results, want 1", len(seen))
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Breaker.Enabled = true
	cfg.RateLimit.DBQueriesPerSecond = 20

	opts := OptionsFromConfig(cfg, nil)
	if opts.Breaker == nil || opts.Limiter == nil {
		t.Fatal("expected breaker and limiter to be configured")
	}
	if opts.MaxRetries != cfg.Retry.MaxRetries || opts.RetryDelay != cfg.Retry.Delay {
		t.Errorf("retry settings not copied: %+v", opts)
	}
	if opts.Limiter.Burst() != 20 {
		t.Errorf("Burst() = %d, want 20", opts.Limiter.Burst())
	}
}
