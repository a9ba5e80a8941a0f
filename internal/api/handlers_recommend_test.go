// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

import (
	"net/http"
	"testing"

	"github.com/contexq/contexq/internal/models"
)

func TestRecommendationsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/recommendations/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("HTTP status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var recs []models.Recommendation
	decodeData(t, rec, &recs)

	// Product 2 is the only co-purchase of product 1 (transaction 1).
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1: %+v", len(recs), recs)
	}
	if recs[0].ProductID != 2 {
		t.Errorf("ProductID = %d, want 2", recs[0].ProductID)
	}
	if recs[0].Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", recs[0].Confidence)
	}
}

func TestRecommendationsFallback(t *testing.T) {
	handler := newTestHandler(t)

	// Product 3 has never been sold; popularity fallback fills in.
	rec := doGet(t, handler, "/api/v1/recommendations/3")
	var recs []models.Recommendation
	decodeData(t, rec, &recs)

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2: %+v", len(recs), recs)
	}
	for i, r := range recs {
		if r.ProductID == 3 {
			t.Errorf("recommendations include the subject product: %+v", r)
		}
		if r.Confidence != 0.5 {
			t.Errorf("recs[%d].Confidence = %v, want 0.5", i, r.Confidence)
		}
	}
}

func TestRecommendationsLimit(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/recommendations/3?limit=1")
	var recs []models.Recommendation
	decodeData(t, rec, &recs)

	if len(recs) != 1 {
		t.Errorf("got %d recommendations, want 1", len(recs))
	}
}

func TestRecommendationsLimitTooLarge(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/recommendations/1?limit=100")
	requireErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestRecommendationsNotFoundEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/recommendations/99999")
	requireErrorCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}
