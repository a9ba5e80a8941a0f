// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package database

import (
	"context"
	"fmt"

	"github.com/contexq/contexq/internal/models"
)

// topProductsLimit caps the dashboard's product leaderboard.
const topProductsLimit = 5

// GetDashboardStats assembles the dashboard read: headline counts, the
// product leaderboard, per-region revenue and the monthly sales trend.
//
// The trend covers the entire sales history, one point per month that has
// at least one dated sale, ascending by month (YYYY-MM). Sales with a NULL
// transaction_date contribute to totals but not to the trend.
func (db *DB) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stats := &models.DashboardStats{
		TopProducts:   []models.TopProduct{},
		SalesByRegion: []models.RegionSales{},
		SalesTrend:    []models.TrendPoint{},
	}

	statusCond, statusArgs := openStatusCondition()
	err := db.conn.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COALESCE(SUM(sale_amount), 0) FROM sales),
			(SELECT COUNT(*) FROM tickets WHERE `+statusCond+`)`,
		statusArgs...,
	).Scan(&stats.TotalCustomers, &stats.TotalSales, &stats.OpenTickets)
	if err != nil {
		return nil, fmt.Errorf("query headline stats: %w", err)
	}

	if err := db.topProducts(ctx, stats); err != nil {
		return nil, err
	}
	if err := db.salesByRegion(ctx, stats); err != nil {
		return nil, err
	}
	if err := db.salesTrend(ctx, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (db *DB) topProducts(ctx context.Context, stats *models.DashboardStats) error {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.product_id, p.product_name, SUM(s.sale_amount) AS total_sales
		 FROM sales s
		 JOIN products p ON s.product_id = p.product_id
		 GROUP BY p.product_id, p.product_name
		 ORDER BY total_sales DESC, p.product_id ASC
		 LIMIT ?`,
		topProductsLimit,
	)
	if err != nil {
		return fmt.Errorf("query top products: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var tp models.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.ProductName, &tp.TotalSales); err != nil {
			return fmt.Errorf("scan top product: %w", err)
		}
		stats.TopProducts = append(stats.TopProducts, tp)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate top products: %w", err)
	}
	return nil
}

func (db *DB) salesByRegion(ctx context.Context, stats *models.DashboardStats) error {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.region, SUM(s.sale_amount) AS total_sales
		 FROM sales s
		 JOIN customers c ON s.customer_id = c.customer_id
		 GROUP BY c.region
		 ORDER BY total_sales DESC, c.region ASC`,
	)
	if err != nil {
		return fmt.Errorf("query sales by region: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var rs models.RegionSales
		if err := rows.Scan(&rs.Region, &rs.TotalSales); err != nil {
			return fmt.Errorf("scan region sales: %w", err)
		}
		stats.SalesByRegion = append(stats.SalesByRegion, rs)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate sales by region: %w", err)
	}
	return nil
}

func (db *DB) salesTrend(ctx context.Context, stats *models.DashboardStats) error {
	// transaction_date is normalized to ISO 8601 at load time, so the
	// YYYY-MM bucket is a plain prefix.
	rows, err := db.conn.QueryContext(ctx,
		`SELECT substr(transaction_date, 1, 7) AS month, SUM(sale_amount) AS total_sales
		 FROM sales
		 WHERE transaction_date IS NOT NULL
		 GROUP BY month
		 ORDER BY month ASC`,
	)
	if err != nil {
		return fmt.Errorf("query sales trend: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var tp models.TrendPoint
		if err := rows.Scan(&tp.Month, &tp.TotalSales); err != nil {
			return fmt.Errorf("scan trend point: %w", err)
		}
		stats.SalesTrend = append(stats.SalesTrend, tp)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate sales trend: %w", err)
	}
	return nil
}
