// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

/*
database_schema.go - Sales Schema Management

Tables, in dependency order:
  - countries, cities: customer and employee geography
  - categories, products: the catalogue
  - customers, employees: the people on either side of a sale
  - sales: one row per transaction

Column names are the entity storage names, so rows read back from any table
feed straight into the model registry.

The customer_purchase_history view aggregates lifetime purchases per
customer. Indexes cover the three access paths the reports rely on: sales by
date and product, customers by city and products by category.
*/

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/tomtom215/salesreport/internal/logging"
)

// PurchaseHistoryView is the name of the per-customer purchase summary view.
const PurchaseHistoryView = "customer_purchase_history"

// Tables lists the schema tables in creation order.
var Tables = []string{"countries", "cities", "categories", "products", "customers", "employees", "sales"}

// EnsureSchema creates any missing tables, indexes and the purchase history view.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range db.tableStatements() {
		if _, err := db.exec(ctx, "schema", stmt, nil); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	for _, stmt := range db.indexStatements() {
		if _, err := db.exec(ctx, "schema", stmt, nil); err != nil && !isDuplicateIndex(err) {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	if _, err := db.exec(ctx, "schema", db.dialect.CreateView(PurchaseHistoryView, purchaseHistoryBody), nil); err != nil {
		return fmt.Errorf("failed to create view %s: %w", PurchaseHistoryView, err)
	}

	logging.Debug().Str("driver", db.dialect.Name()).Msg("Schema ready")
	return nil
}

func (db *DB) tableStatements() []string {
	ts := db.dialect.TimestampType()
	money := db.dialect.MoneyType()
	return []string{
		`CREATE TABLE IF NOT EXISTS countries (
			country_id BIGINT PRIMARY KEY,
			country_name VARCHAR(100) NOT NULL,
			country_code CHAR(2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cities (
			city_id BIGINT PRIMARY KEY,
			city_name VARCHAR(100) NOT NULL,
			zip_code VARCHAR(20),
			country_id BIGINT REFERENCES countries (country_id)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id BIGINT PRIMARY KEY,
			category_name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id BIGINT PRIMARY KEY,
			product_name VARCHAR(200) NOT NULL,
			price ` + money + `,
			category_id BIGINT REFERENCES categories (category_id),
			class_type VARCHAR(20),
			modify_date DATE,
			resistant VARCHAR(20),
			is_allergic VARCHAR(20),
			vitality_days INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id BIGINT PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			middle_initial VARCHAR(5),
			last_name VARCHAR(100) NOT NULL,
			city_id BIGINT REFERENCES cities (city_id),
			address VARCHAR(200)
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			employee_id BIGINT PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			middle_initial VARCHAR(5),
			last_name VARCHAR(100) NOT NULL,
			birth_date DATE,
			gender CHAR(1),
			city_id BIGINT REFERENCES cities (city_id),
			hire_date DATE
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			sale_id BIGINT PRIMARY KEY,
			sales_person_id BIGINT REFERENCES employees (employee_id),
			customer_id BIGINT REFERENCES customers (customer_id),
			product_id BIGINT REFERENCES products (product_id),
			quantity INTEGER,
			discount ` + money + `,
			total_price ` + money + `,
			sale_date ` + ts + `,
			transaction_number VARCHAR(50)
		)`,
	}
}

func (db *DB) indexStatements() []string {
	d := db.dialect
	return []string{
		d.CreateIndex("idx_sales_date_product", "sales", "sale_date", "product_id"),
		d.CreateIndex("idx_sales_customer", "sales", "customer_id"),
		d.CreateIndex("idx_customers_city", "customers", "city_id"),
		d.CreateIndex("idx_products_category", "products", "category_id"),
	}
}

const purchaseHistoryBody = `SELECT
	c.customer_id,
	CONCAT(c.first_name, ' ', c.last_name) AS customer_name,
	ci.city_name,
	co.country_name,
	COUNT(s.sale_id) AS total_purchases,
	COALESCE(SUM(s.total_price), 0) AS total_spent,
	AVG(s.total_price) AS avg_purchase_value,
	COALESCE(SUM(s.quantity), 0) AS total_items,
	MIN(s.sale_date) AS first_purchase_date,
	MAX(s.sale_date) AS last_purchase_date
FROM customers c
LEFT JOIN cities ci ON c.city_id = ci.city_id
LEFT JOIN countries co ON ci.country_id = co.country_id
LEFT JOIN sales s ON c.customer_id = s.customer_id
GROUP BY c.customer_id, c.first_name, c.last_name, ci.city_name, co.country_name`

// isDuplicateIndex recognizes MySQL error 1061 (duplicate key name).
func isDuplicateIndex(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1061
}
