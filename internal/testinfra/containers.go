// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

//go:build integration

package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable checks if Docker daemon is running and accessible.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", "info")
	return cmd.Run() == nil
}

// CleanupContainer terminates container when the test finishes, logging
// failures instead of failing the test.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()

	t.Cleanup(func() {
		if container == nil {
			return
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})
}

// options are shared by the database containers.
type options struct {
	image        string
	database     string
	user         string
	password     string
	startTimeout time.Duration
}

// Option configures a database container.
type Option func(*options)

// WithImage overrides the Docker image.
func WithImage(image string) Option {
	return func(o *options) { o.image = image }
}

// WithDatabase sets the database name created at startup.
func WithDatabase(name string) Option {
	return func(o *options) { o.database = name }
}

// WithCredentials sets the application user and password.
func WithCredentials(user, password string) Option {
	return func(o *options) {
		o.user = user
		o.password = password
	}
}

// WithStartTimeout bounds the wait for the server to accept connections.
func WithStartTimeout(timeout time.Duration) Option {
	return func(o *options) { o.startTimeout = timeout }
}

func applyOptions(image string, opts []Option) *options {
	o := &options{
		image:        image,
		database:     "salesreport",
		user:         "salesreport",
		password:     "salesreport",
		startTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
