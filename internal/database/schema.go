// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context for schema operations with a generous timeout.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// createTables creates the five entity tables if they do not exist.
// No foreign keys: the generated dataset is assumed referentially consistent
// and is never written after the bulk import.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// tableCreationQueries returns the table creation SQL statements.
func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id INTEGER PRIMARY KEY,
			customer_name TEXT NOT NULL,
			industry TEXT NOT NULL,
			region TEXT NOT NULL,
			join_date TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			product_id INTEGER PRIMARY KEY,
			product_name TEXT NOT NULL,
			category TEXT NOT NULL,
			cost_price DOUBLE NOT NULL,
			sales_price DOUBLE NOT NULL
		)`,

		// One row per line item; rows sharing a transaction_id were bought
		// together, which is what the co-occurrence query counts.
		`CREATE TABLE IF NOT EXISTS sales (
			transaction_id INTEGER NOT NULL,
			customer_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			sale_amount DOUBLE NOT NULL,
			transaction_date TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS tickets (
			ticket_id INTEGER PRIMARY KEY,
			customer_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			issue_type TEXT NOT NULL,
			status TEXT NOT NULL,
			creation_date TEXT NOT NULL,
			resolution_date TEXT,
			sentiment_score DOUBLE NOT NULL
		)`,

		// A supplier appears once per supplied product; no uniqueness
		// constraint across (supplier_id, product_id).
		`CREATE TABLE IF NOT EXISTS suppliers (
			supplier_id INTEGER NOT NULL,
			supplier_name TEXT NOT NULL,
			product_id INTEGER NOT NULL,
			lead_time_days INTEGER NOT NULL,
			reliability_score DOUBLE NOT NULL
		)`,
	}
}

// tablesExist reports whether the entity tables have been created.
// The customers table stands in for all five; they are created in one pass.
func (db *DB) tablesExist(ctx context.Context) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`,
		"customers",
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check tables: %w", err)
	}
	return count > 0, nil
}
