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

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("HTTP status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var health models.HealthStatus
	decodeData(t, rec, &health)

	if health.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", health.Status)
	}
	if !health.DatabaseConnected {
		t.Error("DatabaseConnected = false, want true")
	}
	if !health.DatasetLoaded {
		t.Error("DatasetLoaded = false, want true")
	}
	if health.Version == "" {
		t.Error("Version is empty")
	}
}

func TestHealthUnloadedStore(t *testing.T) {
	handler := newUnloadedHandler(t)

	rec := doGet(t, handler, "/api/v1/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("HTTP status = %d, want 503", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("response status = %q, want success with unhealthy payload", env.Status)
	}
}

func TestHealthLiveEndpoint(t *testing.T) {
	// Liveness never depends on the dataset.
	handler := newUnloadedHandler(t)

	rec := doGet(t, handler, "/api/v1/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("HTTP status = %d, want 200", rec.Code)
	}
}

func TestHealthReadyEndpoint(t *testing.T) {
	handler := newUnloadedHandler(t)

	rec := doGet(t, handler, "/api/v1/health/ready")
	requireErrorCode(t, rec, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}

func TestHealthReadyAfterLoad(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/v1/health/ready")
	if rec.Code != http.StatusOK {
		t.Errorf("HTTP status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
}
