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

// CustomerSummary returns the composite per-customer view: profile, spend
// totals, open support load and favorite category.
//
// Method: GET
// Path: /api/v1/customers/{id}
//
// Response:
//   - 200: Summary retrieved successfully
//   - 400: Invalid customer id
//   - 404: Customer does not exist
//   - 500: Database error
func (h *Handler) CustomerSummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireReady(w) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Customer id must be a positive integer", err)
		return
	}

	start := time.Now()
	summary, err := h.db.GetCustomerSummary(r.Context(), id)
	metrics.RecordDBQuery("summary", "customers", time.Since(start), err)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve customer summary", err)
		return
	}

	respondSuccess(w, summary, time.Since(start))
}

// ProductSummary returns the composite per-product view: catalog data,
// revenue, profit and support signals.
//
// Method: GET
// Path: /api/v1/products/{id}
//
// Response:
//   - 200: Summary retrieved successfully
//   - 400: Invalid product id
//   - 404: Product does not exist
//   - 500: Database error
func (h *Handler) ProductSummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireReady(w) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Product id must be a positive integer", err)
		return
	}

	start := time.Now()
	summary, err := h.db.GetProductSummary(r.Context(), id)
	metrics.RecordDBQuery("summary", "products", time.Since(start), err)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve product summary", err)
		return
	}

	respondSuccess(w, summary, time.Since(start))
}
