// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package config

import (
	"fmt"

	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/validation"
)

// Validate checks struct tags and the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRetry(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

// MinJWTSecretLength is the shortest accepted HS256 signing secret.
const MinJWTSecretLength = 32

func (c *Config) validateServer() error {
	if c.Server.JWTSecret != "" && len(c.Server.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if c.Server.TokenTTL < 0 {
		return fmt.Errorf("server.token_ttl must not be negative, got %s", c.Server.TokenTTL)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for driver %s", c.Database.Driver)
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for driver %s", c.Database.Driver)
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("DB_PORT is required for driver %s", c.Database.Driver)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for driver sqlite")
		}
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("database.query_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateRetry() error {
	if c.Retry.Delay < 0 {
		return fmt.Errorf("RETRY_DELAY must not be negative, got %s", c.Retry.Delay)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	return nil
}
