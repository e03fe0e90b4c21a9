// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/salesreport/internal/analysis"
	"github.com/tomtom215/salesreport/internal/database/query"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Table string
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare [strategy...]",
		Short: "Run several analysis strategies over the same data",
		Long: `Load a table once and run several strategies over it. Without arguments
every registered strategy runs. Results are keyed by strategy name.

Example:
  salesreport compare
  salesreport compare revenue quantity`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "table to analyze (default analysis.default_table)")
	return cmd
}

func runCompare(cmd *cobra.Command, opts *CompareOptions, keys []string) error {
	factory := analysis.DefaultFactory()
	if len(keys) == 0 {
		keys = factory.AvailableStrategies()
	}
	strategies, err := factory.CreateStrategies(keys...)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown strategy", err)
	}

	tableName := tableOrDefault(opts.Table, opts.Config.Analysis.DefaultTable)
	if err := query.CheckIdentifier(tableName); err != nil {
		return WrapExitError(ExitCommandError, "invalid table", err)
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.exec.ExecuteQuery(ctx, "SELECT * FROM "+tableName, nil)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load "+tableName, err)
	}
	results, err := analysis.NewContext(nil, a.exec).CompareStrategies(ctx, strategies, data)
	if err != nil {
		return WrapExitError(ExitFailure, "comparison failed", err)
	}
	return opts.formatter(cmd).Success(results)
}
