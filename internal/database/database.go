// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tomtom215/salesreport/internal/config"
	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/ops"
)

// DB is the shared database handle. It is safe for concurrent use.
type DB struct {
	// conn is replaced as a whole on reconnect; load it once per statement.
	conn    atomic.Pointer[sql.DB]
	cfg     config.DatabaseConfig
	dialect Dialect

	reconnectMu       sync.Mutex
	maxReconnectTries int
	reconnectDelay    time.Duration
}

// Open connects using cfg and verifies the connection with a ping. A
// failure to reach the server is returned as an *ops.OperationError that
// wraps apperrors.ErrConnectionFailed.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	if isFileDatabase(cfg) {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	db := &DB{
		cfg:               cfg,
		dialect:           dialect,
		maxReconnectTries: 3,
		reconnectDelay:    time.Second,
	}
	if err := db.connect(ctx); err != nil {
		return nil, err
	}

	logging.Info().Str("database", cfg.String()).Msg("Database connected")
	return db, nil
}

// New opens cfg with a 30 second connection timeout.
func New(cfg config.DatabaseConfig) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return Open(ctx, cfg)
}

// connect opens a fresh pool, configures it and pings it.
func (db *DB) connect(ctx context.Context) error {
	conn, err := sql.Open(db.dialect.driverName(), db.cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.configureConnectionPool(conn)

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return &ops.OperationError{Op: "connect", Err: err, Connection: true}
	}
	db.conn.Store(conn)
	return nil
}

// configureConnectionPool applies the pool limits from configuration.
// In-memory DuckDB and SQLite are pinned to a single connection so that
// every statement sees the same database.
func (db *DB) configureConnectionPool(conn *sql.DB) {
	maxOpen := db.cfg.MaxOpenConns
	if isMemoryDatabase(db.cfg) && db.cfg.Driver == config.DriverSQLite {
		maxOpen = 1
	}
	if maxOpen > 0 {
		conn.SetMaxOpenConns(maxOpen)
	}
	if db.cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(db.cfg.MaxIdleConns)
	}
	if db.cfg.ConnMaxLifetime > 0 && !isMemoryDatabase(db.cfg) {
		conn.SetConnMaxLifetime(db.cfg.ConnMaxLifetime)
	}
}

// Conn exposes the underlying pool.
func (db *DB) Conn() *sql.DB {
	return db.conn.Load()
}

// Dialect returns the SQL dialect of the connected engine.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Config returns the configuration the handle was opened with.
func (db *DB) Config() config.DatabaseConfig {
	return db.cfg
}

// Ephemeral reports whether the data lives only as long as the process, as
// with an in-memory DuckDB or SQLite database.
func (db *DB) Ephemeral() bool {
	return isMemoryDatabase(db.cfg)
}

// Close releases the pool.
func (db *DB) Close() error {
	conn := db.conn.Load()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// ensureContext applies the configured query timeout when ctx has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline || db.cfg.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.cfg.QueryTimeout)
}

func isFileDatabase(cfg config.DatabaseConfig) bool {
	return (cfg.Driver == config.DriverDuckDB || cfg.Driver == config.DriverSQLite) && !isMemoryDatabase(cfg)
}

func isMemoryDatabase(cfg config.DatabaseConfig) bool {
	if cfg.Driver != config.DriverDuckDB && cfg.Driver != config.DriverSQLite {
		return false
	}
	return cfg.Path == "" || cfg.Path == ":memory:"
}
