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

// fallbackConfidence is assigned to popularity-based recommendations, which
// carry no co-purchase signal to normalize against.
const fallbackConfidence = 0.5

// GetRecommendations returns up to limit products frequently bought in the
// same transactions as the given product, ordered by co-occurrence count.
// Confidence is the count normalized against the strongest co-purchase, so
// the top recommendation always scores 1.0.
//
// When the product has no co-purchase history at all, the result falls back
// to overall bestsellers with a flat confidence of fallbackConfidence. An
// unknown product id returns ErrNotFound; the subject product is never
// recommended to itself.
func (db *DB) GetRecommendations(ctx context.Context, productID, limit int) ([]models.Recommendation, error) {
	if _, err := db.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	recs, err := db.coPurchases(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		return recs, nil
	}

	return db.popularProducts(ctx, productID, limit)
}

// coPurchases counts, over the distinct transactions containing productID,
// how often each other product appears, and normalizes counts into
// confidences.
func (db *DB) coPurchases(ctx context.Context, productID, limit int) ([]models.Recommendation, error) {
	rows, err := db.conn.QueryContext(ctx,
		`WITH txns AS (
			SELECT DISTINCT transaction_id FROM sales WHERE product_id = ?
		 )
		 SELECT s.product_id, p.product_name, COUNT(*) AS freq
		 FROM sales s
		 JOIN txns t ON s.transaction_id = t.transaction_id
		 JOIN products p ON s.product_id = p.product_id
		 WHERE s.product_id <> ?
		 GROUP BY s.product_id, p.product_name
		 ORDER BY freq DESC, s.product_id ASC
		 LIMIT ?`,
		productID, productID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query co-purchases: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var recs []models.Recommendation
	var counts []int
	for rows.Next() {
		var rec models.Recommendation
		var count int
		if err := rows.Scan(&rec.ProductID, &rec.ProductName, &count); err != nil {
			return nil, fmt.Errorf("scan co-purchase: %w", err)
		}
		recs = append(recs, rec)
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate co-purchases: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	// Rows arrive in descending count order, so the first count is the max.
	maxCount := counts[0]
	for i := range recs {
		recs[i].Confidence = round2(float64(counts[i]) / float64(maxCount))
	}
	return recs, nil
}

// popularProducts ranks every other product by total sale line items. The
// LEFT JOIN keeps never-sold products eligible with a count of zero.
func (db *DB) popularProducts(ctx context.Context, excludeID, limit int) ([]models.Recommendation, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.product_id, p.product_name, COUNT(s.transaction_id) AS freq
		 FROM products p
		 LEFT JOIN sales s ON p.product_id = s.product_id
		 WHERE p.product_id <> ?
		 GROUP BY p.product_id, p.product_name
		 ORDER BY freq DESC, p.product_id ASC
		 LIMIT ?`,
		excludeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query popular products: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var recs []models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		var count int
		if err := rows.Scan(&rec.ProductID, &rec.ProductName, &count); err != nil {
			return nil, fmt.Errorf("scan popular product: %w", err)
		}
		rec.Confidence = fallbackConfidence
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular products: %w", err)
	}

	return recs, nil
}
