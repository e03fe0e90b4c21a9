// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/salesreport/internal/api"
	"github.com/tomtom215/salesreport/internal/auth"
	"github.com/tomtom215/salesreport/internal/config"
	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/middleware"
	"github.com/tomtom215/salesreport/internal/supervisor"
	"github.com/tomtom215/salesreport/internal/supervisor/services"
)

// Background service intervals.
const (
	DatabaseMonitorInterval = 30 * time.Second
	minJanitorInterval      = 10 * time.Second
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reporting API over HTTP",
		Long: `Start the HTTP API under a supervisor tree together with the database
monitor and the cache janitor. SIGINT or SIGTERM shuts down gracefully.

Authentication is enabled when server.jwt_secret (JWT_SECRET) is set.

Example:
  salesreport serve
  salesreport serve --addr 127.0.0.1:9090 --config /etc/salesreport.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default server.host:server.port)")
	return cmd
}

// server is everything serve starts.
type server struct {
	app        *app
	handler    http.Handler
	httpServer *http.Server
	tree       *supervisor.SupervisorTree
}

// newServer opens the database and assembles the API and the supervisor
// tree without starting anything.
func newServer(ctx context.Context, cfg *config.Config, addr string) (*server, error) {
	var jwtManager *auth.JWTManager
	if cfg.Server.JWTSecret != "" {
		m, err := auth.NewJWTManager(cfg.Server.JWTSecret, cfg.Server.TokenTTL)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to initialize JWT manager", err)
		}
		jwtManager = m
		logging.Info().Dur("token_ttl", cfg.Server.TokenTTL).Msg("JWT authentication enabled")
	} else {
		logging.Warn().Msg("Authentication is DISABLED (no JWT_SECRET); every endpoint is public")
	}

	a, err := openApp(ctx, cfg)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(a.db, cfg, api.HandlerOptions{
		Querier: a.exec,
		Monitor: middleware.NewRouteMonitor(middleware.DefaultMonitorWindow),
		Version: Version,
	})
	router := api.NewRouter(handler, jwtManager, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg)))
	routes := router.Setup()

	if addr == "" {
		addr = cfg.Server.Addr()
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           routes,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		a.Close()
		return nil, WrapExitError(ExitCommandError, "failed to create supervisor tree", err)
	}

	tree.AddDataService(services.NewDatabaseMonitor(a.db, DatabaseMonitorInterval))
	tree.AddDataService(services.NewCacheJanitor(a.lru, janitorInterval(cfg.Cache.TTL)))
	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))

	return &server{app: a, handler: routes, httpServer: httpServer, tree: tree}, nil
}

// janitorInterval sweeps twice per TTL, but never more often than
// minJanitorInterval. Without expiry there is nothing to sweep often.
func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Hour
	}
	return max(ttl/2, minJanitorInterval)
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	s, err := newServer(ctx, opts.Config, opts.Addr)
	if err != nil {
		return err
	}
	defer s.app.Close()

	logging.Info().
		Str("addr", s.httpServer.Addr).
		Str("database", s.app.db.Config().String()).
		Str("version", Version).
		Msg("Starting salesreport server")

	err = s.tree.Serve(ctx)
	if report, reportErr := s.tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "server stopped", err)
	}
	logging.Info().Msg("Server stopped")
	return nil
}
