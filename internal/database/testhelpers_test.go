// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package database

import (
	"context"
	"testing"

	"github.com/contexq/contexq/internal/config"
)

// testDBSemaphore serializes test database lifecycles. Concurrent DuckDB CGO
// calls from parallel tests can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory test database with the entity tables
// created and the readiness barrier released.
//
// The semaphore is held for the entire test lifecycle via t.Cleanup, so only
// one test has an active DuckDB connection at a time.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	if err := db.createTables(); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
	db.markReady()

	return db
}

func insertCustomer(t *testing.T, db *DB, id int, name, industry, region, joinDate string) {
	t.Helper()
	_, err := db.conn.ExecContext(context.Background(),
		`INSERT INTO customers (customer_id, customer_name, industry, region, join_date) VALUES (?, ?, ?, ?, ?)`,
		id, name, industry, region, joinDate)
	if err != nil {
		t.Fatalf("Failed to insert customer %d: %v", id, err)
	}
}

func insertProduct(t *testing.T, db *DB, id int, name, category string, costPrice, salesPrice float64) {
	t.Helper()
	_, err := db.conn.ExecContext(context.Background(),
		`INSERT INTO products (product_id, product_name, category, cost_price, sales_price) VALUES (?, ?, ?, ?, ?)`,
		id, name, category, costPrice, salesPrice)
	if err != nil {
		t.Fatalf("Failed to insert product %d: %v", id, err)
	}
}

func insertSale(t *testing.T, db *DB, txnID, customerID, productID, quantity int, amount float64, date string) {
	t.Helper()
	_, err := db.conn.ExecContext(context.Background(),
		`INSERT INTO sales (transaction_id, customer_id, product_id, quantity, sale_amount, transaction_date) VALUES (?, ?, ?, ?, ?, ?)`,
		txnID, customerID, productID, quantity, amount, date)
	if err != nil {
		t.Fatalf("Failed to insert sale %d: %v", txnID, err)
	}
}

func insertTicket(t *testing.T, db *DB, id, customerID, productID int, issueType, status string, sentiment float64) {
	t.Helper()
	_, err := db.conn.ExecContext(context.Background(),
		`INSERT INTO tickets (ticket_id, customer_id, product_id, issue_type, status, creation_date, resolution_date, sentiment_score)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, ?)`,
		id, customerID, productID, issueType, status, "2025-01-15", sentiment)
	if err != nil {
		t.Fatalf("Failed to insert ticket %d: %v", id, err)
	}
}

func insertSupplier(t *testing.T, db *DB, id int, name string, productID, leadTime int, reliability float64) {
	t.Helper()
	_, err := db.conn.ExecContext(context.Background(),
		`INSERT INTO suppliers (supplier_id, supplier_name, product_id, lead_time_days, reliability_score) VALUES (?, ?, ?, ?, ?)`,
		id, name, productID, leadTime, reliability)
	if err != nil {
		t.Fatalf("Failed to insert supplier %d: %v", id, err)
	}
}
