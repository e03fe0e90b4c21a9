// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

// Package config loads Salesreport configuration from layered sources.
//
// Sources are applied in order, later layers winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. A YAML file (--config, CONFIG_PATH, or config.yaml in the working directory)
//  3. Environment variables (DB_HOST, CACHE_SIZE, LOG_LEVEL, ...)
//
// Example:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Invalid configuration")
//	}
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Supported database drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Retry     RetryConfig     `koanf:"retry"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Logging   LoggingConfig   `koanf:"logging"`
	Server    ServerConfig    `koanf:"server"`
	Analysis  AnalysisConfig  `koanf:"analysis"`
}

// DatabaseConfig selects and tunes the database collaborator.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"oneof=duckdb mysql postgres sqlite"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=0,lte=65535"`
	Name            string        `koanf:"name"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Path            string        `koanf:"path"` // duckdb and sqlite file, ":memory:" for ephemeral
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	QueryTimeout    time.Duration `koanf:"query_timeout"`
	Seed            bool          `koanf:"seed"` // create schema and sample data on startup
}

// CacheConfig sizes the operation result cache.
type CacheConfig struct {
	Size        int           `koanf:"size" validate:"gte=1"`
	TTL         time.Duration `koanf:"ttl"` // 0 disables expiry
	PersistPath string        `koanf:"persist_path"`
}

// RetryConfig controls the retry wrapper. The delay between attempts is fixed.
type RetryConfig struct {
	MaxRetries int           `koanf:"max_retries" validate:"gte=0,lte=20"`
	Delay      time.Duration `koanf:"delay"`
}

// BreakerConfig controls the optional circuit breaker around database calls.
type BreakerConfig struct {
	Enabled     bool          `koanf:"enabled"`
	MaxFailures uint32        `koanf:"max_failures"`
	Timeout     time.Duration `koanf:"timeout"`
}

// RateLimitConfig bounds database and HTTP request rates.
type RateLimitConfig struct {
	DBQueriesPerSecond    float64 `koanf:"db_qps" validate:"gte=0"` // 0 means unlimited
	HTTPRequestsPerMinute int     `koanf:"http_requests_per_minute" validate:"gte=0"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	JWTSecret       string        `koanf:"jwt_secret"`
	TokenTTL        time.Duration `koanf:"token_ttl"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// AnalysisConfig holds analysis defaults.
type AnalysisConfig struct {
	DefaultStrategy string `koanf:"default_strategy"`
	DefaultTable    string `koanf:"default_table"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DSN builds the driver-specific data source name.
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
		mc.DBName = d.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
			Path:   "/" + d.Name,
		}
		return u.String()
	case DriverSQLite:
		if d.Path == "" || d.Path == ":memory:" {
			return "file::memory:?cache=shared"
		}
		return d.Path
	default:
		if d.Path == ":memory:" {
			return ""
		}
		return d.Path
	}
}

// Redacted returns a copy with secrets masked, suitable for logging.
func (c Config) Redacted() Config {
	if c.Database.Password != "" {
		c.Database.Password = "***REDACTED***"
	}
	if c.Server.JWTSecret != "" {
		c.Server.JWTSecret = "***REDACTED***"
	}
	return c
}

// String implements fmt.Stringer without leaking secrets.
func (d DatabaseConfig) String() string {
	if d.Driver == DriverDuckDB || d.Driver == DriverSQLite {
		return fmt.Sprintf("%s(%s)", d.Driver, d.Path)
	}
	return fmt.Sprintf("%s(%s@%s:%d/%s)", d.Driver, d.User, d.Host, d.Port, d.Name)
}
