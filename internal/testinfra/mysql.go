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
	// DefaultMySQLImage is the MySQL server image used by integration tests.
	DefaultMySQLImage = "mysql:8.4"

	mysqlPort = "3306/tcp"
)

// MySQLContainer is a running MySQL server.
type MySQLContainer struct {
	testcontainers.Container
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// NewMySQLContainer starts a MySQL server with an empty database and waits
// until it accepts TCP connections.
func NewMySQLContainer(ctx context.Context, opts ...Option) (*MySQLContainer, error) {
	o := applyOptions(DefaultMySQLImage, opts)

	req := testcontainers.ContainerRequest{
		Image:        o.image,
		ExposedPorts: []string{mysqlPort},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": o.password,
			"MYSQL_DATABASE":      o.database,
			"MYSQL_USER":          o.user,
			"MYSQL_PASSWORD":      o.password,
		},
		// The entrypoint's temporary server listens on port 0; only the
		// final server logs port 3306.
		WaitingFor: wait.ForAll(
			wait.ForLog("port: 3306  MySQL Community Server"),
			wait.ForListeningPort(mysqlPort),
		).WithDeadline(o.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create mysql container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, mysqlPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &MySQLContainer{
		Container: container,
		Host:      host,
		Port:      port.Int(),
		Database:  o.database,
		User:      o.user,
		Password:  o.password,
	}, nil
}

// DatabaseConfig returns a configuration that connects to the container.
func (c *MySQLContainer) DatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:       config.DriverMySQL,
		Host:         c.Host,
		Port:         c.Port,
		Name:         c.Database,
		User:         c.User,
		Password:     c.Password,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}
}
