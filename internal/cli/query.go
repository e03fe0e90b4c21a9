// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"github.com/spf13/cobra"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Params []string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run an ad-hoc SQL query",
		Long: `Run a statement through the database operation stack (logging, caching,
retries) and print the result. Named :parameters are bound from --param.

Example:
  salesreport query "SELECT COUNT(*) AS n FROM sales"
  salesreport query "SELECT * FROM sales WHERE quantity >= :qty" --param qty=5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Params, "param", "p", nil, "named parameter as key=value (repeatable)")
	return cmd
}

func runQuery(cmd *cobra.Command, opts *QueryOptions, sql string) error {
	params, _, err := parseParams(opts.Params)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.exec.ExecuteQuery(ctx, sql, params)
	if err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}
	return opts.formatter(cmd).Success(result)
}
