// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/table"
)

// SeedOptions controls the generated sample data. Zero values take the defaults.
type SeedOptions struct {
	Customers int
	Employees int
	Sales     int
	Seed      uint64
	// Now anchors sale dates; they fall within the 400 days before it.
	Now time.Time
	// Reset deletes existing rows first. Without it, a database that already
	// has sales is left untouched.
	Reset bool
}

// Default seed sizes.
const (
	DefaultSeedCustomers = 50
	DefaultSeedEmployees = 8
	DefaultSeedSales     = 500
	DefaultSeedValue     = 42
	seedHistoryDays      = 400
)

func (o SeedOptions) withDefaults() SeedOptions {
	if o.Customers <= 0 {
		o.Customers = DefaultSeedCustomers
	}
	if o.Employees <= 0 {
		o.Employees = DefaultSeedEmployees
	}
	if o.Sales <= 0 {
		o.Sales = DefaultSeedSales
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeedValue
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	o.Now = o.Now.UTC().Truncate(time.Second)
	return o
}

// SeedResult reports how many rows each table received.
type SeedResult struct {
	Skipped bool           `json:"skipped"`
	Rows    map[string]int `json:"rows"`
}

var seedCountries = []struct {
	name, code string
}{
	{"United States", "US"},
	{"Canada", "CA"},
	{"United Kingdom", "GB"},
	{"Germany", "DE"},
	{"Japan", "JP"},
}

var seedCities = []struct {
	name, zip string
	country   int64
}{
	{"New York", "10001", 1},
	{"Chicago", "60601", 1},
	{"San Francisco", "94103", 1},
	{"Toronto", "M5H", 2},
	{"Vancouver", "V6B", 2},
	{"London", "EC1A", 3},
	{"Manchester", "M1", 3},
	{"Berlin", "10115", 4},
	{"Munich", "80331", 4},
	{"Tokyo", "100-0001", 5},
}

var seedCatalogue = []struct {
	category string
	products []string
}{
	{"Produce", []string{"Organic Apples", "Baby Spinach", "Vine Tomatoes", "Avocados"}},
	{"Dairy", []string{"Whole Milk", "Greek Yogurt", "Aged Cheddar", "Salted Butter"}},
	{"Bakery", []string{"Sourdough Loaf", "Croissants", "Bagels", "Rye Bread"}},
	{"Beverages", []string{"Cold Brew Coffee", "Green Tea", "Orange Juice", "Sparkling Water"}},
	{"Meat", []string{"Chicken Breast", "Ground Beef", "Pork Chops", "Smoked Salmon"}},
	{"Snacks", []string{"Trail Mix", "Dark Chocolate", "Potato Chips", "Granola Bars"}},
}

var (
	seedFirstNames = []string{"Alice", "Bob", "Carmen", "David", "Emma", "Farid", "Grace", "Hiro", "Isabel", "Jamal", "Keiko", "Liam", "Maya", "Noah", "Olga", "Pedro"}
	seedLastNames  = []string{"Anderson", "Brown", "Chen", "Dubois", "Evans", "Fischer", "Garcia", "Hughes", "Ito", "Jensen", "Khan", "Lopez", "Muller", "Nakamura", "Okafor", "Patel"}
	seedStreets    = []string{"Main", "Oak", "Maple", "High", "Park", "Station", "Mill", "Church"}
)

// Seed fills the schema with deterministic sample data. The same options
// always produce the same rows. EnsureSchema runs first.
func (db *DB) Seed(ctx context.Context, opts SeedOptions) (SeedResult, error) {
	opts = opts.withDefaults()
	if err := db.EnsureSchema(ctx); err != nil {
		return SeedResult{}, err
	}

	if opts.Reset {
		if err := db.clearTables(ctx); err != nil {
			return SeedResult{}, err
		}
	} else {
		t, err := db.ExecuteQuery(ctx, "SELECT COUNT(*) AS n FROM sales", nil)
		if err != nil {
			return SeedResult{}, err
		}
		v, _ := t.Value(0, "n")
		if n, _ := table.AsInt(v); n > 0 {
			logging.Info().Int64("sales", n).Msg("Database already seeded, skipping")
			return SeedResult{Skipped: true}, nil
		}
	}

	tx, err := db.conn.Load().BeginTx(ctx, nil)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	s := &seeder{
		db:   db,
		tx:   tx,
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		opts: opts,
		rows: make(map[string]int),
	}
	if err := s.run(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Warn().Err(rbErr).Msg("Failed to roll back seed transaction")
		}
		return SeedResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("failed to commit seed data: %w", err)
	}

	logging.Info().Interface("rows", s.rows).Msg("Sample data seeded")
	return SeedResult{Rows: s.rows}, nil
}

func (db *DB) clearTables(ctx context.Context) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := db.exec(ctx, "seed", "DELETE FROM "+Tables[i], nil); err != nil {
			return fmt.Errorf("failed to clear %s: %w", Tables[i], err)
		}
	}
	return nil
}

type seeder struct {
	db   *DB
	tx   *sql.Tx
	rng  *rand.Rand
	opts SeedOptions
	rows map[string]int

	productPrices []float64
}

func (s *seeder) run(ctx context.Context) error {
	steps := []func(context.Context) error{
		s.countries, s.cities, s.catalogue, s.customers, s.employees, s.sales,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// insert prepares one INSERT for tableName and runs it for every row.
func (s *seeder) insert(ctx context.Context, tableName string, columns []string, rows [][]any) error {
	marks := make([]string, len(columns))
	for i := range columns {
		marks[i] = s.db.dialect.Placeholder(i + 1)
	}
	stmt, err := s.tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(columns, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", tableName, err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for _, row := range rows {
		for i := range row {
			row[i] = bindValue(row[i])
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to seed %s: %w", tableName, err)
		}
	}
	s.rows[tableName] = len(rows)
	return nil
}

func (s *seeder) countries(ctx context.Context) error {
	rows := make([][]any, len(seedCountries))
	for i, c := range seedCountries {
		rows[i] = []any{int64(i + 1), c.name, c.code}
	}
	return s.insert(ctx, "countries", []string{"country_id", "country_name", "country_code"}, rows)
}

func (s *seeder) cities(ctx context.Context) error {
	rows := make([][]any, len(seedCities))
	for i, c := range seedCities {
		rows[i] = []any{int64(i + 1), c.name, c.zip, c.country}
	}
	return s.insert(ctx, "cities", []string{"city_id", "city_name", "zip_code", "country_id"}, rows)
}

func (s *seeder) catalogue(ctx context.Context) error {
	categories := make([][]any, len(seedCatalogue))
	var products [][]any
	for i, c := range seedCatalogue {
		categoryID := int64(i + 1)
		categories[i] = []any{categoryID, c.category}
		for _, name := range c.products {
			price := money(1.5 + s.rng.Float64()*48.5)
			s.productPrices = append(s.productPrices, price)
			products = append(products, []any{
				int64(len(products) + 1),
				name,
				price,
				categoryID,
				pick(s.rng, "Low", "Medium", "High"),
				s.opts.Now.AddDate(0, 0, -s.rng.IntN(365)).Truncate(24 * time.Hour),
				pick(s.rng, "Durable", "Weak", "Unknown"),
				pick(s.rng, "TRUE", "FALSE", "Unknown"),
				int64(s.rng.IntN(120)),
			})
		}
	}
	if err := s.insert(ctx, "categories", []string{"category_id", "category_name"}, categories); err != nil {
		return err
	}
	return s.insert(ctx, "products", []string{
		"product_id", "product_name", "price", "category_id", "class_type",
		"modify_date", "resistant", "is_allergic", "vitality_days",
	}, products)
}

func (s *seeder) customers(ctx context.Context) error {
	rows := make([][]any, s.opts.Customers)
	for i := range rows {
		rows[i] = []any{
			int64(i + 1),
			pick(s.rng, seedFirstNames...),
			string(rune('A' + s.rng.IntN(26))),
			pick(s.rng, seedLastNames...),
			int64(1 + s.rng.IntN(len(seedCities))),
			fmt.Sprintf("%d %s St", 1+s.rng.IntN(999), pick(s.rng, seedStreets...)),
		}
	}
	return s.insert(ctx, "customers", []string{
		"customer_id", "first_name", "middle_initial", "last_name", "city_id", "address",
	}, rows)
}

func (s *seeder) employees(ctx context.Context) error {
	rows := make([][]any, s.opts.Employees)
	for i := range rows {
		birth := time.Date(1960+s.rng.IntN(40), time.Month(1+s.rng.IntN(12)), 1+s.rng.IntN(28), 0, 0, 0, 0, time.UTC)
		hire := s.opts.Now.AddDate(-s.rng.IntN(10), 0, -s.rng.IntN(365)).Truncate(24 * time.Hour)
		rows[i] = []any{
			int64(i + 1),
			pick(s.rng, seedFirstNames...),
			nil,
			pick(s.rng, seedLastNames...),
			birth,
			pick(s.rng, "M", "F"),
			int64(1 + s.rng.IntN(len(seedCities))),
			hire,
		}
	}
	return s.insert(ctx, "employees", []string{
		"employee_id", "first_name", "middle_initial", "last_name",
		"birth_date", "gender", "city_id", "hire_date",
	}, rows)
}

func (s *seeder) sales(ctx context.Context) error {
	rows := make([][]any, s.opts.Sales)
	for i := range rows {
		product := s.rng.IntN(len(s.productPrices))
		quantity := 1 + s.rng.IntN(6)
		if s.rng.IntN(10) == 0 {
			quantity += 4 + s.rng.IntN(8)
		}
		gross := s.productPrices[product] * float64(quantity)
		discount := 0.0
		if s.rng.IntN(4) == 0 {
			discount = money(gross * float64(1+s.rng.IntN(3)) * 0.05)
		}
		at := s.opts.Now.
			AddDate(0, 0, -s.rng.IntN(seedHistoryDays)).
			Add(-time.Duration(s.rng.IntN(86400)) * time.Second)

		saleID := int64(i + 1)
		rows[i] = []any{
			saleID,
			int64(1 + s.rng.IntN(s.opts.Employees)),
			int64(1 + s.rng.IntN(s.opts.Customers)),
			int64(product + 1),
			int64(quantity),
			discount,
			money(gross - discount),
			at,
			fmt.Sprintf("TRX%s%04d", at.Format("20060102"), saleID),
		}
	}
	return s.insert(ctx, "sales", []string{
		"sale_id", "sales_person_id", "customer_id", "product_id", "quantity",
		"discount", "total_price", "sale_date", "transaction_number",
	}, rows)
}

func pick(rng *rand.Rand, options ...string) string {
	return options[rng.IntN(len(options))]
}

func money(v float64) float64 {
	return math.Round(v*100) / 100
}
