// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/salesreport/internal/cache"
	"github.com/tomtom215/salesreport/internal/config"
)

// Options configures DatabaseOperation. Zero values disable the optional
// concerns: no cache, no retries, no breaker and no rate limit.
type Options struct {
	Logger            *zerolog.Logger
	Observer          func(name string, d time.Duration)
	Cache             cache.Cacher
	MaxRetries        int
	RetryDelay        time.Duration
	Breaker           *CircuitBreaker
	Limiter           *rate.Limiter
	IsConnectionError func(error) bool
}

// OptionsFromConfig builds Options from the retry, breaker and rate limit
// sections of cfg. c may be nil to disable caching.
func OptionsFromConfig(cfg *config.Config, c cache.Cacher) Options {
	opts := Options{
		Cache:      c,
		MaxRetries: cfg.Retry.MaxRetries,
		RetryDelay: cfg.Retry.Delay,
	}
	if cfg.Breaker.Enabled {
		opts.Breaker = NewCircuitBreaker("database", cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	}
	if qps := cfg.RateLimit.DBQueriesPerSecond; qps > 0 {
		burst := int(qps)
		if burst < 1 {
			burst = 1
		}
		opts.Limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
	return opts
}

// DatabaseOperation returns the standard wrapper stack. From outermost to
// innermost: Logging, Timing, Caching, Retry, ErrorHandling, then the
// optional Breaker and RateLimit directly around the operation.
func DatabaseOperation[T any](opts Options) Wrapper[T] {
	wrappers := []Wrapper[T]{
		Logging[T](opts.Logger),
		Timing[T](opts.Observer),
		Caching[T](opts.Cache),
		Retry[T](opts.MaxRetries, opts.RetryDelay),
		ErrorHandling[T](opts.IsConnectionError),
	}
	if opts.Breaker != nil {
		wrappers = append(wrappers, Breaker[T](opts.Breaker))
	}
	if opts.Limiter != nil {
		wrappers = append(wrappers, RateLimit[T](opts.Limiter))
	}
	return Chain(wrappers...)
}
