// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/salesreport/internal/analysis"
	"github.com/tomtom215/salesreport/internal/logging"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	Table string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze [strategy]",
		Short: "Run one analysis strategy over a table",
		Long: `Load a table and compute the metrics of one analysis strategy.

Strategies: revenue, product, customer, quantity. Without an argument the
configured analysis.default_strategy runs.

Example:
  salesreport analyze revenue
  salesreport analyze customer --table sales --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := opts.Config.Analysis.DefaultStrategy
			if len(args) == 1 {
				key = args[0]
			}
			return runAnalyze(cmd, opts, key)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "table to analyze (default analysis.default_table)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions, key string) error {
	strategy, err := analysis.DefaultFactory().CreateStrategy(key)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown strategy", err)
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	tableName := tableOrDefault(opts.Table, opts.Config.Analysis.DefaultTable)
	start := time.Now()
	metrics, err := analysis.NewContext(strategy, a.exec).PerformAnalysisOn(ctx, tableName)
	if err != nil {
		return WrapExitError(ExitFailure, "analysis failed", err)
	}
	logging.Debug().Str("strategy", key).Str("table", tableName).Dur("duration", time.Since(start)).Msg("Analysis complete")

	return opts.formatter(cmd).Success(metrics)
}

func tableOrDefault(name, def string) string {
	if name != "" {
		return name
	}
	if def != "" {
		return def
	}
	return analysis.DefaultTable
}
