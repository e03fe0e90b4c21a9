// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package services

import (
	"context"
	"time"

	"github.com/tomtom215/salesreport/internal/cache"
	"github.com/tomtom215/salesreport/internal/logging"
)

// PeriodicService runs task every interval until its context is canceled.
// A failing task is logged and retried on the next tick; it never stops the
// service.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
}

// NewPeriodicService creates a service named name. A non-positive interval
// defaults to one minute.
func NewPeriodicService(name string, interval time.Duration, task func(ctx context.Context) error) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{name: name, interval: interval, task: task}
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger := logging.WithComponent(p.name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.task(ctx); err != nil && ctx.Err() == nil {
				logger.Warn().Err(err).Msg("Periodic task failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (p *PeriodicService) String() string {
	return p.name
}

// Pinger checks a connection. *database.DB implements it and reconnects a
// dropped pool inside Ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewDatabaseMonitor pings db every interval. The ping is bounded by half
// the interval.
func NewDatabaseMonitor(db Pinger, interval time.Duration) *PeriodicService {
	svc := NewPeriodicService("database-monitor", interval, nil)
	svc.task = func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, svc.interval/2)
		defer cancel()
		return db.Ping(ctx)
	}
	return svc
}

// ExpiringCache is a cache that can drop expired entries eagerly.
// *cache.LRUCache implements it.
type ExpiringCache interface {
	CleanupExpired() int
	Stats() cache.Stats
}

// NewCacheJanitor removes expired entries from c every interval.
func NewCacheJanitor(c ExpiringCache, interval time.Duration) *PeriodicService {
	return NewPeriodicService("cache-janitor", interval, func(context.Context) error {
		if removed := c.CleanupExpired(); removed > 0 {
			stats := c.Stats()
			logging.Debug().
				Int("removed", removed).
				Int("size", stats.Size).
				Msg("Expired cache entries removed")
		}
		return nil
	})
}
