// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/contexq/contexq/internal/database"
	"github.com/contexq/contexq/internal/metrics"
)

// defaultRecommendLimit matches the dashboard's recommendation widget size.
const defaultRecommendLimit = 5

// Recommendations returns products frequently bought together with the given
// product, falling back to overall bestsellers when the product has no
// co-purchase history.
//
// Method: GET
// Path: /api/v1/recommendations/{id}
// Query: limit (default 5, max 50)
//
// Response:
//   - 200: Recommendations retrieved successfully
//   - 400: Invalid product id or limit
//   - 404: Product does not exist
//   - 500: Database error
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireReady(w) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Product id must be a positive integer", err)
		return
	}

	req := RecommendRequest{
		ProductID: id,
		Limit:     getIntParam(r, "limit", defaultRecommendLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	recs, err := h.db.GetRecommendations(r.Context(), req.ProductID, req.Limit)
	metrics.RecordDBQuery("recommend", "sales", time.Since(start), err)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute recommendations", err)
		return
	}

	respondSuccess(w, recs, time.Since(start))
}
