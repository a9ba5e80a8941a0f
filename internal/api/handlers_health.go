// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

import (
	"net/http"
	"time"

	"github.com/contexq/contexq/internal/models"
)

// Health returns the full health status: database connectivity, dataset
// readiness and uptime.
//
// Method: GET
// Path: /api/v1/health
//
// Returns 200 when healthy, 503 when the database is unreachable or the
// dataset has not finished loading.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	loaded := h.db != nil && h.db.IsReady()

	status := "healthy"
	httpStatus := http.StatusOK
	if !dbConnected || !loaded {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:            status,
			Version:           Version,
			DatabaseConnected: dbConnected,
			DatasetLoaded:     loaded,
			Uptime:            time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive is the liveness probe. It answers 200 whenever the process can
// serve HTTP, regardless of dataset state.
//
// Method: GET
// Path: /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady is the readiness probe. It answers 503 until the one-time
// dataset load has completed, so load balancers hold traffic during startup.
//
// Method: GET
// Path: /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	if h.db == nil || !h.db.IsReady() {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Dataset is still loading", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
