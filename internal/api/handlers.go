// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

import (
	"time"

	"github.com/contexq/contexq/internal/config"
	"github.com/contexq/contexq/internal/database"
)

// Version is the API version reported by the health endpoint.
// Overridden at build time via -ldflags.
var Version = "dev"

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	db        *database.DB
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *database.DB, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		cfg:       cfg,
		startTime: time.Now(),
	}
}
