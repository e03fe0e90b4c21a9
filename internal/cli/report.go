// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tomtom215/salesreport/internal/api"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Params []string
	List   bool
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report [name]",
		Short: "Run a named report",
		Long: `Run one of the reports also served at /api/v1/reports/{name}. Report
parameters are passed as repeated --param key=value flags with the same
names as the HTTP query parameters.

Example:
  salesreport report --list
  salesreport report top-customers --param limit=5
  salesreport report sales-report --param start_date=2026-01-01 --param details=true`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.List || len(args) == 0 {
				return listReports(cmd, opts)
			}
			return runReport(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Params, "param", "p", nil, "report parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list available reports")
	return cmd
}

func listReports(cmd *cobra.Command, opts *ReportOptions) error {
	catalog := api.ReportCatalog()
	if opts.Format == FormatJSON {
		return opts.formatter(cmd).Success(catalog)
	}
	for _, info := range catalog {
		fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", info.Name, info.Description)
	}
	return nil
}

func runReport(cmd *cobra.Command, opts *ReportOptions, name string) error {
	if !slices.Contains(api.ReportNames(), name) {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown report %q (see --list)", name))
	}
	_, values, err := parseParams(opts.Params)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	h := api.NewHandler(a.db, opts.Config, api.HandlerOptions{Querier: a.exec, Version: Version})
	data, err := h.RunReport(ctx, name, values)
	if err != nil {
		return WrapExitError(ExitFailure, "report "+name+" failed", err)
	}
	return opts.formatter(cmd).Success(data)
}
