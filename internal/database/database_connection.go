// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
database_connection.go - Connection Recovery

Ping detects a dead pool and reconnects with exponential backoff:
  - the connection error is classified with IsConnectionError
  - the old pool is closed and a new one opened from the same configuration
  - up to maxReconnectTries attempts, doubling reconnectDelay each time

Query errors (bad SQL, constraint violations) never trigger a reconnect.
In-memory databases lose their contents on reconnect.
*/

package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/logging"
)

// Ping verifies the connection and reconnects when it is gone.
func (db *DB) Ping(ctx context.Context) error {
	conn := db.conn.Load()
	if conn == nil {
		return fmt.Errorf("database connection is nil: %w", apperrors.ErrConnectionFailed)
	}
	err := conn.PingContext(ctx)
	if err == nil || !IsConnectionError(err) {
		return err
	}
	logging.Warn().Err(err).Msg("Database connection lost, reconnecting")
	return db.reconnect(ctx)
}

// TestConnection reports whether SELECT 1 round-trips.
func (db *DB) TestConnection(ctx context.Context) bool {
	return testConnection(ctx, db)
}

func (db *DB) reconnect(ctx context.Context) error {
	db.reconnectMu.Lock()
	defer db.reconnectMu.Unlock()

	// Another caller may have reconnected while we waited for the lock.
	old := db.conn.Load()
	if err := old.PingContext(ctx); err == nil {
		return nil
	}

	var lastErr error
	for attempt := 0; attempt < db.maxReconnectTries; attempt++ {
		if attempt > 0 {
			delay := db.reconnectDelay * time.Duration(1<<uint(attempt-1))
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}

		if err := db.connect(ctx); err != nil {
			lastErr = fmt.Errorf("reconnect attempt %d failed: %w", attempt+1, err)
			logging.Warn().Err(err).Int("attempt", attempt+1).Msg("Reconnect failed")
			continue
		}

		closeWithLog(old, "stale connection pool")
		logging.Info().Int("attempt", attempt+1).Msg("Database reconnected")
		return nil
	}
	return fmt.Errorf("failed to reconnect after %d attempts: %w", db.maxReconnectTries, lastErr)
}

// IsConnectionError reports whether err means the database could not be
// reached, as opposed to a statement failing.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, apperrors.ErrConnectionFailed) {
		return true
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.ConnectError
	if errors.As(err, &pgErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection refused", "connection reset", "broken pipe", "bad connection", "no such host"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
