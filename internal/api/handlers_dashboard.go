// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

import (
	"net/http"
	"time"

	"github.com/contexq/contexq/internal/metrics"
)

// DashboardStats returns the dashboard read: headline counts, the product
// leaderboard, per-region revenue and the monthly sales trend.
//
// Method: GET
// Path: /api/v1/dashboard/stats
//
// The response includes query execution time in metadata for performance
// monitoring.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.requireReady(w) {
		return
	}

	start := time.Now()
	stats, err := h.db.GetDashboardStats(r.Context())
	metrics.RecordDBQuery("stats", "sales", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve dashboard statistics", err)
		return
	}

	respondSuccess(w, stats, time.Since(start))
}
