// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/salesreport/internal/cache"
)

func runFor(t *testing.T, svc interface{ Serve(context.Context) error }, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}

func TestPeriodicService_RunsTask(t *testing.T) {
	var runs atomic.Int32
	svc := NewPeriodicService("counter", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return errors.New("failures do not stop the service")
	})

	runFor(t, svc, 100*time.Millisecond)

	if got := runs.Load(); got < 3 {
		t.Errorf("task ran %d times, want at least 3", got)
	}
	if svc.String() != "counter" {
		t.Errorf("String() = %q, want counter", svc.String())
	}
}

func TestPeriodicService_DefaultInterval(t *testing.T) {
	if svc := NewPeriodicService("x", 0, nil); svc.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", svc.interval)
	}
}

type countingPinger struct{ pings atomic.Int32 }

func (p *countingPinger) Ping(ctx context.Context) error {
	p.pings.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return nil
}

func TestDatabaseMonitor(t *testing.T) {
	p := &countingPinger{}
	svc := NewDatabaseMonitor(p, 10*time.Millisecond)

	runFor(t, svc, 60*time.Millisecond)

	if p.pings.Load() == 0 {
		t.Error("database was never pinged")
	}
	if svc.String() != "database-monitor" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestCacheJanitor(t *testing.T) {
	c := cache.NewLRUCache(10, 5*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)

	runFor(t, NewCacheJanitor(c, 20*time.Millisecond), 80*time.Millisecond)

	if c.Len() != 0 {
		t.Errorf("Len() = %d after janitor, want 0", c.Len())
	}
}
