// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the files searched when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/salesreport/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig holds every default; file and environment layers override it.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          DriverDuckDB,
			Host:            "localhost",
			Port:            3306,
			Name:            "sales_manager",
			User:            "root",
			Path:            ":memory:",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			QueryTimeout:    30 * time.Second,
		},
		Cache: CacheConfig{
			Size: 100,
			TTL:  5 * time.Minute,
		},
		Retry: RetryConfig{
			MaxRetries: 3,
			Delay:      time.Second,
		},
		Breaker: BreakerConfig{
			Enabled:     false,
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			DBQueriesPerSecond:    0,
			HTTPRequestsPerMinute: 120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			TokenTTL:        24 * time.Hour,
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Analysis: AnalysisConfig{
			DefaultStrategy: "revenue",
			DefaultTable:    "sales",
		},
	}
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	return defaultConfig()
}

// sliceConfigPaths are fields that accept comma-separated env values.
var sliceConfigPaths = []string{"server.cors_origins"}

// envMappings maps environment variables (lower-cased) to koanf paths.
// Unmapped variables are ignored so that unrelated environment cannot leak in.
var envMappings = map[string]string{
	"db_driver":            "database.driver",
	"db_host":              "database.host",
	"db_port":              "database.port",
	"db_name":              "database.name",
	"db_user":              "database.user",
	"db_password":          "database.password",
	"duckdb_path":          "database.path",
	"db_max_open_conns":    "database.max_open_conns",
	"db_query_timeout":     "database.query_timeout",
	"db_seed":              "database.seed",
	"cache_size":           "cache.size",
	"cache_ttl":            "cache.ttl",
	"cache_persist_path":   "cache.persist_path",
	"retry_max":            "retry.max_retries",
	"retry_delay":          "retry.delay",
	"breaker_enabled":      "breaker.enabled",
	"breaker_max_failures": "breaker.max_failures",
	"db_rate_limit":        "rate_limit.db_qps",
	"http_rate_limit":      "rate_limit.http_requests_per_minute",
	"log_level":            "logging.level",
	"log_format":           "logging.format",
	"log_caller":           "logging.caller",
	"http_host":            "server.host",
	"http_port":            "server.port",
	"jwt_secret":           "server.jwt_secret",
	"cors_origins":         "server.cors_origins",
	"analysis_strategy":    "analysis.default_strategy",
	"analysis_table":       "analysis.default_table",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, then validates it. An empty path searches DefaultConfigPaths.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
