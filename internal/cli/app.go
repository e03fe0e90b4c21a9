// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/salesreport/internal/cache"
	"github.com/tomtom215/salesreport/internal/config"
	"github.com/tomtom215/salesreport/internal/database"
	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/ops"
	"github.com/tomtom215/salesreport/internal/table"
)

// app is the set of collaborators a command works with.
type app struct {
	cfg     *config.Config
	db      *database.DB
	exec    *database.Executor
	lru     *cache.LRUCache
	closers []io.Closer
}

// openApp connects to the configured database and wraps it in the standard
// operation stack. Ephemeral databases and those with database.seed set are
// seeded first.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	a := &app{cfg: cfg, db: db}

	if cfg.Database.Seed || db.Ephemeral() {
		res, err := db.Seed(ctx, database.SeedOptions{})
		if err != nil {
			a.Close()
			return nil, WrapExitError(ExitCommandError, "failed to seed database", err)
		}
		logging.Debug().Bool("skipped", res.Skipped).Interface("rows", res.Rows).Msg("Database seeded")
	}

	a.lru = cache.NewLRUCache(cfg.Cache.Size, cfg.Cache.TTL)
	var c cache.Cacher = a.lru
	if cfg.Cache.PersistPath != "" {
		store, err := cache.OpenBadgerStore[*table.Table](cfg.Cache.PersistPath, cfg.Cache.TTL)
		if err != nil {
			a.Close()
			return nil, WrapExitError(ExitCommandError, "failed to open result cache", err)
		}
		a.closers = append(a.closers, store)
		c = cache.NewTiered(a.lru, store)
	}

	opts := ops.OptionsFromConfig(cfg, c)
	logger := logging.WithComponent("database")
	opts.Logger = &logger
	a.exec = db.Wrapped(opts)

	logging.Debug().Str("database", db.Config().String()).Msg("Database ready")
	return a, nil
}

// Close releases the cache store and the database.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing result cache")
		}
	}
	if err := a.db.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing database")
	}
}

// parseParams splits repeated key=value flags. Values that parse as integers
// or floats become numbers so they bind with the right SQL type.
func parseParams(pairs []string) (map[string]any, url.Values, error) {
	named := make(map[string]any, len(pairs))
	values := make(url.Values, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, nil, NewExitError(ExitCommandError, "invalid --param "+strconv.Quote(pair)+": want key=value")
		}
		values.Add(key, value)
		named[key] = typedValue(value)
	}
	return named, values, nil
}

func typedValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
