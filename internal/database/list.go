// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/contexq/contexq/internal/models"
)

// queryTimeout bounds individual read queries. All reads are bounded by
// dataset size, so this is generous.
const queryTimeout = 10 * time.Second

// CustomerFilter restricts customer listings. Empty fields are not applied.
type CustomerFilter struct {
	Industry string
	Region   string
}

// ProductFilter restricts product listings. Nil price bounds are not applied;
// bounds compare against sales_price.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// ListCustomers returns a page of customers in insertion order, optionally
// filtered by exact industry and region match.
func (db *DB) ListCustomers(ctx context.Context, limit, offset int, filter CustomerFilter) ([]models.Customer, error) {
	query := `SELECT customer_id, customer_name, industry, region, join_date FROM customers`
	var args []interface{}

	var conditions []string
	if filter.Industry != "" {
		conditions = append(conditions, "industry = ?")
		args = append(args, filter.Industry)
	}
	if filter.Region != "" {
		conditions = append(conditions, "region = ?")
		args = append(args, filter.Region)
	}
	query += whereClause(conditions)
	query += ` ORDER BY rowid LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.Industry, &c.Region, &c.JoinDate); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}

// ListProducts returns a page of products in insertion order, optionally
// filtered by exact category match and a sales price range.
func (db *DB) ListProducts(ctx context.Context, limit, offset int, filter ProductFilter) ([]models.Product, error) {
	query := `SELECT product_id, product_name, category, cost_price, sales_price FROM products`
	var args []interface{}

	var conditions []string
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, "sales_price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "sales_price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	query += whereClause(conditions)
	query += ` ORDER BY rowid LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Category, &p.CostPrice, &p.SalesPrice); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// ListSales returns a page of sale line items in insertion order.
func (db *DB) ListSales(ctx context.Context, limit, offset int) ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT transaction_id, customer_id, product_id, quantity, sale_amount, transaction_date
		 FROM sales ORDER BY rowid LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.TransactionID, &s.CustomerID, &s.ProductID, &s.Quantity, &s.SaleAmount, &s.TransactionDate); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	return sales, nil
}

// ListTickets returns a page of support tickets in insertion order.
func (db *DB) ListTickets(ctx context.Context, limit, offset int) ([]models.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT ticket_id, customer_id, product_id, issue_type, status, creation_date, resolution_date, sentiment_score
		 FROM tickets ORDER BY rowid LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var tickets []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.TicketID, &t.CustomerID, &t.ProductID, &t.IssueType, &t.Status,
			&t.CreationDate, &t.ResolutionDate, &t.SentimentScore); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}

	return tickets, nil
}

// ListSuppliers returns a page of supplier-product links in insertion order.
func (db *DB) ListSuppliers(ctx context.Context, limit, offset int) ([]models.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT supplier_id, supplier_name, product_id, lead_time_days, reliability_score
		 FROM suppliers ORDER BY rowid LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var suppliers []models.Supplier
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(&s.SupplierID, &s.SupplierName, &s.ProductID, &s.LeadTimeDays, &s.ReliabilityScore); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}

	return suppliers, nil
}

// List resolves an entity name to its listing query. Unknown entity names
// return ErrUnknownEntity. Filterable entities (customers, products) apply
// no filters through this path.
func (db *DB) List(ctx context.Context, entity string, limit, offset int) (interface{}, error) {
	switch entity {
	case "customers":
		return db.ListCustomers(ctx, limit, offset, CustomerFilter{})
	case "products":
		return db.ListProducts(ctx, limit, offset, ProductFilter{})
	case "sales":
		return db.ListSales(ctx, limit, offset)
	case "tickets":
		return db.ListTickets(ctx, limit, offset)
	case "suppliers":
		return db.ListSuppliers(ctx, limit, offset)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
}

// whereClause joins conditions into a WHERE clause, or returns "" when empty.
func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	clause := " WHERE " + conditions[0]
	for _, c := range conditions[1:] {
		clause += " AND " + c
	}
	return clause
}
