// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/salesreport/internal/database"
	"github.com/tomtom215/salesreport/internal/logging"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Customers int
	Employees int
	Sales     int
	Seed      uint64
	Reset     bool
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load sample data",
		Long: `Create the tables, indexes and view, then insert deterministic sample
data. A database that already has sales is left alone unless --reset is given.

Example:
  salesreport seed
  salesreport seed --sales 5000 --reset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Customers, "customers", database.DefaultSeedCustomers, "number of customers")
	cmd.Flags().IntVar(&opts.Employees, "employees", database.DefaultSeedEmployees, "number of employees")
	cmd.Flags().IntVar(&opts.Sales, "sales", database.DefaultSeedSales, "number of sales")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", database.DefaultSeedValue, "random seed")
	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "delete existing rows first")
	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	ctx := cmd.Context()
	db, err := database.Open(ctx, opts.Config.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing database")
		}
	}()

	res, err := db.Seed(ctx, database.SeedOptions{
		Customers: opts.Customers,
		Employees: opts.Employees,
		Sales:     opts.Sales,
		Seed:      opts.Seed,
		Reset:     opts.Reset,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "seed failed", err)
	}
	if db.Ephemeral() {
		logging.Warn().Str("database", db.Config().String()).Msg("Seeded an in-memory database; the data is gone when the command exits")
	}
	return opts.formatter(cmd).Success(res)
}
