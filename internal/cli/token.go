// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/salesreport/internal/auth"
)

// TokenOptions holds flags for the token command.
type TokenOptions struct {
	*RootOptions
	Subject string
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API",
		Long: `Sign a token with server.jwt_secret (JWT_SECRET) valid for
server.token_ttl. Send it as "Authorization: Bearer <token>".

Example:
  JWT_SECRET=... salesreport token --subject reporting-dashboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := auth.NewJWTManager(opts.Config.Server.JWTSecret, opts.Config.Server.TokenTTL)
			if err != nil {
				return WrapExitError(ExitCommandError, "authentication is not configured", err)
			}
			token, err := m.GenerateToken(opts.Subject)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to sign token", err)
			}
			return opts.formatter(cmd).Success(token)
		},
	}

	cmd.Flags().StringVar(&opts.Subject, "subject", "salesreport", "token subject")
	return cmd
}
