// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/contexq/contexq/internal/models"
)

func TestCustomersEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/customers")
	if rec.Code != http.StatusOK {
		t.Fatalf("HTTP status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var customers []models.Customer
	decodeData(t, rec, &customers)
	if len(customers) != 2 {
		t.Errorf("got %d customers, want 2", len(customers))
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("ETag header missing")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("X-Content-Type-Options header missing")
	}
}

func TestCustomersFilter(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/customers?industry=Tech")
	var customers []models.Customer
	decodeData(t, rec, &customers)

	if len(customers) != 1 || customers[0].CustomerName != "Acme" {
		t.Errorf("customers = %+v, want only Acme", customers)
	}
}

func TestCustomersInvalidLimit(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name  string
		query string
	}{
		{"zero", "limit=0"},
		{"negative", "limit=-5"},
		{"too large", "limit=5000"},
		{"negative offset", "offset=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, handler, "/api/v1/customers?"+tt.query)
			requireErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
		})
	}
}

func TestProductsPriceFilter(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/products?min_price=20&max_price=100")
	var products []models.Product
	decodeData(t, rec, &products)

	if len(products) != 1 || products[0].ProductName != "Widget" {
		t.Errorf("products = %+v, want only Widget", products)
	}
}

func TestProductsNegativePrice(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/products?min_price=-1")
	requireErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestEntityListEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		path     string
		wantRows int
	}{
		{"/api/v1/products", 3},
		{"/api/v1/sales", 4},
		{"/api/v1/tickets", 2},
		{"/api/v1/suppliers", 2},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := doGet(t, handler, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("HTTP status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
			}

			var rows []json.RawMessage
			decodeData(t, rec, &rows)
			if len(rows) != tt.wantRows {
				t.Errorf("got %d rows, want %d", len(rows), tt.wantRows)
			}
		})
	}
}

func TestListPagination(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/sales?limit=2&offset=2")
	var sales []models.Sale
	decodeData(t, rec, &sales)

	if len(sales) != 2 {
		t.Errorf("got %d sales, want 2", len(sales))
	}
}

func TestNotReady(t *testing.T) {
	handler := newUnloadedHandler(t)

	paths := []string{
		"/api/v1/customers",
		"/api/v1/customers/1",
		"/api/v1/products",
		"/api/v1/recommendations/1",
		"/api/v1/dashboard/stats",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := doGet(t, handler, path)
			requireErrorCode(t, rec, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("HTTP status = %d, want 405", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("HTTP status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("metrics body is empty")
	}
}
