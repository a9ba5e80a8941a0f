// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

import (
	"net/http"
	"time"

	"github.com/contexq/contexq/internal/database"
	"github.com/contexq/contexq/internal/metrics"
)

// This file contains the entity listing endpoints.
//
// Endpoints in this file:
//   - Customers: customer directory with industry/region filters
//   - Products: product catalog with category and price range filters
//   - Sales: sale line item history
//   - Tickets: support ticket history
//   - Suppliers: supplier-product links
//
// All handlers follow a consistent pattern:
//  1. Method validation (GET)
//  2. Readiness check (dataset must be loaded)
//  3. Parameter parsing and validation
//  4. Database query with context
//  5. JSON response with metadata

// requireMethod validates HTTP method and returns true if valid, false if error was sent
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return false
	}
	return true
}

// Customers returns a page of customers, optionally filtered by exact
// industry and region.
//
// Method: GET
// Path: /api/v1/customers
// Query: limit (default 100), offset, industry, region
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireReady(w) {
		return
	}

	req := ListRequest{
		Limit:  getIntParam(r, "limit", h.cfg.API.DefaultPageSize),
		Offset: getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	filter := database.CustomerFilter{
		Industry: r.URL.Query().Get("industry"),
		Region:   r.URL.Query().Get("region"),
	}

	start := time.Now()
	customers, err := h.db.ListCustomers(r.Context(), req.Limit, req.Offset, filter)
	metrics.RecordDBQuery("list", "customers", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve customers", err)
		return
	}

	respondSuccess(w, customers, time.Since(start))
}

// Products returns a page of products, optionally filtered by category and
// a sales price range.
//
// Method: GET
// Path: /api/v1/products
// Query: limit (default 50), offset, category, min_price, max_price
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireReady(w) {
		return
	}

	req := ProductListRequest{
		Limit:    getIntParam(r, "limit", defaultProductPageSize),
		Offset:   getIntParam(r, "offset", 0),
		MinPrice: getFloatParam(r, "min_price"),
		MaxPrice: getFloatParam(r, "max_price"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	filter := database.ProductFilter{
		Category: r.URL.Query().Get("category"),
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}

	start := time.Now()
	products, err := h.db.ListProducts(r.Context(), req.Limit, req.Offset, filter)
	metrics.RecordDBQuery("list", "products", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve products", err)
		return
	}

	respondSuccess(w, products, time.Since(start))
}

// Smaller collections default to a smaller page.
const defaultProductPageSize = 50

// Sales returns a page of sale line items.
//
// Method: GET
// Path: /api/v1/sales
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	h.entityList(w, r, "sales", h.cfg.API.DefaultPageSize)
}

// Tickets returns a page of support tickets.
//
// Method: GET
// Path: /api/v1/tickets
func (h *Handler) Tickets(w http.ResponseWriter, r *http.Request) {
	h.entityList(w, r, "tickets", h.cfg.API.DefaultPageSize)
}

// Suppliers returns a page of supplier-product links.
//
// Method: GET
// Path: /api/v1/suppliers
func (h *Handler) Suppliers(w http.ResponseWriter, r *http.Request) {
	h.entityList(w, r, "suppliers", defaultProductPageSize)
}

// entityList serves the unfiltered listing endpoints through the generic
// entity dispatcher.
func (h *Handler) entityList(w http.ResponseWriter, r *http.Request, entity string, defaultLimit int) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireReady(w) {
		return
	}

	req := ListRequest{
		Limit:  getIntParam(r, "limit", defaultLimit),
		Offset: getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	result, err := h.db.List(r.Context(), entity, req.Limit, req.Offset)
	metrics.RecordDBQuery("list", entity, time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve "+entity, err)
		return
	}

	respondSuccess(w, result, time.Since(start))
}
