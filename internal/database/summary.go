// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/contexq/contexq/internal/models"
)

// round2 rounds to 2 decimal places, matching the API's sentiment and
// confidence precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// openStatusCondition returns a parameterized "status IN (...)" fragment for
// the unresolved ticket statuses.
func openStatusCondition() (string, []interface{}) {
	placeholders := make([]string, len(models.OpenTicketStatuses))
	args := make([]interface{}, len(models.OpenTicketStatuses))
	for i, status := range models.OpenTicketStatuses {
		placeholders[i] = "?"
		args[i] = status
	}
	return "status IN (" + strings.Join(placeholders, ",") + ")", args
}

// GetCustomerByID returns a single customer, or ErrNotFound.
func (db *DB) GetCustomerByID(ctx context.Context, customerID int) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c models.Customer
	err := db.conn.QueryRowContext(ctx,
		`SELECT customer_id, customer_name, industry, region, join_date FROM customers WHERE customer_id = ?`,
		customerID,
	).Scan(&c.CustomerID, &c.CustomerName, &c.Industry, &c.Region, &c.JoinDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

// GetProductByID returns a single product, or ErrNotFound.
func (db *DB) GetProductByID(ctx context.Context, productID int) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := db.conn.QueryRowContext(ctx,
		`SELECT product_id, product_name, category, cost_price, sales_price FROM products WHERE product_id = ?`,
		productID,
	).Scan(&p.ProductID, &p.ProductName, &p.Category, &p.CostPrice, &p.SalesPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

// GetCustomerSummary composes the per-customer view: profile, spend totals,
// unresolved support load and favorite product category.
//
// Missing activity is "no activity", not an error: all aggregates default to
// zero and FavoriteCategory is "N/A" when the customer has no sales. Only an
// unknown customer id fails (ErrNotFound).
func (db *DB) GetCustomerSummary(ctx context.Context, customerID int) (*models.CustomerSummary, error) {
	customer, err := db.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	summary := &models.CustomerSummary{
		Customer:         *customer,
		FavoriteCategory: "N/A",
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sale_amount), 0), COUNT(*) FROM sales WHERE customer_id = ?`,
		customerID,
	).Scan(&summary.TotalSpent, &summary.TotalTransactions)
	if err != nil {
		return nil, fmt.Errorf("query customer sales totals: %w", err)
	}

	statusCond, statusArgs := openStatusCondition()
	ticketArgs := append([]interface{}{customerID}, statusArgs...)
	var avgSentiment float64
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(sentiment_score), 0) FROM tickets WHERE customer_id = ? AND `+statusCond,
		ticketArgs...,
	).Scan(&summary.OpenTickets, &avgSentiment)
	if err != nil {
		return nil, fmt.Errorf("query customer tickets: %w", err)
	}
	summary.AvgSentiment = round2(avgSentiment)

	// Favorite category: highest purchase count wins; ties break on the
	// lexicographically smallest category for deterministic output.
	var favorite string
	err = db.conn.QueryRowContext(ctx,
		`SELECT p.category
		 FROM sales s
		 JOIN products p ON s.product_id = p.product_id
		 WHERE s.customer_id = ?
		 GROUP BY p.category
		 ORDER BY COUNT(*) DESC, p.category ASC
		 LIMIT 1`,
		customerID,
	).Scan(&favorite)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// no sales - keep "N/A"
	case err != nil:
		return nil, fmt.Errorf("query favorite category: %w", err)
	default:
		summary.FavoriteCategory = favorite
	}

	return summary, nil
}

// GetProductSummary composes the per-product view: catalog data, revenue,
// profit and support signals.
//
// Profit = total sales - total quantity * cost price, computed exactly.
// CommonIssues holds up to 3 issue types by descending ticket frequency,
// ties broken lexicographically. AvgSentiment covers all of the product's
// tickets, 0 when it has none.
func (db *DB) GetProductSummary(ctx context.Context, productID int) (*models.ProductSummary, error) {
	product, err := db.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	summary := &models.ProductSummary{
		Product:      *product,
		CommonIssues: []string{},
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sale_amount), 0), COALESCE(SUM(quantity), 0) FROM sales WHERE product_id = ?`,
		productID,
	).Scan(&summary.TotalSales, &summary.TotalQuantity)
	if err != nil {
		return nil, fmt.Errorf("query product sales totals: %w", err)
	}
	summary.Profit = summary.TotalSales - float64(summary.TotalQuantity)*product.CostPrice

	rows, err := db.conn.QueryContext(ctx,
		`SELECT issue_type
		 FROM tickets
		 WHERE product_id = ?
		 GROUP BY issue_type
		 ORDER BY COUNT(*) DESC, issue_type ASC
		 LIMIT 3`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("query common issues: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var issue string
		if err := rows.Scan(&issue); err != nil {
			return nil, fmt.Errorf("scan issue type: %w", err)
		}
		summary.CommonIssues = append(summary.CommonIssues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate common issues: %w", err)
	}

	var avgSentiment float64
	err = db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(sentiment_score), 0) FROM tickets WHERE product_id = ?`,
		productID,
	).Scan(&avgSentiment)
	if err != nil {
		return nil, fmt.Errorf("query product sentiment: %w", err)
	}
	summary.AvgSentiment = round2(avgSentiment)

	return summary, nil
}
