// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

//go:build integration

package testinfra

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/salesreport/internal/config"
)

const (
	// DefaultPostgresImage is the PostgreSQL server image used by integration tests.
	DefaultPostgresImage = "postgres:16-alpine"

	postgresPort = "5432/tcp"
)

// PostgresContainer is a running PostgreSQL server.
type PostgresContainer struct {
	testcontainers.Container
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// NewPostgresContainer starts a PostgreSQL server with an empty database.
func NewPostgresContainer(ctx context.Context, opts ...Option) (*PostgresContainer, error) {
	o := applyOptions(DefaultPostgresImage, opts)

	req := testcontainers.ContainerRequest{
		Image:        o.image,
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_DB":       o.database,
			"POSTGRES_USER":     o.user,
			"POSTGRES_PASSWORD": o.password,
		},
		// initdb restarts the server once, so the message appears twice.
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(postgresPort),
		).WithDeadline(o.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		Host:      host,
		Port:      port.Int(),
		Database:  o.database,
		User:      o.user,
		Password:  o.password,
	}, nil
}

// DatabaseConfig returns a configuration that connects to the container.
func (c *PostgresContainer) DatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		Host:         c.Host,
		Port:         c.Port,
		Name:         c.Database,
		User:         c.User,
		Password:     c.Password,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}
}
