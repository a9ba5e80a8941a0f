// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

// Package api provides HTTP routing using Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/contexq/contexq/internal/config"
	"github.com/contexq/contexq/internal/database"
	"github.com/contexq/contexq/internal/middleware"
)

// Router wires handlers and middleware into the HTTP routing tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given database and configuration.
func NewRouter(db *database.DB, cfg *config.Config) *Router {
	chiMw := NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)

	return &Router{
		handler:       NewHandler(db, cfg),
		chiMiddleware: chiMw,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddlewareFunc(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())             // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)               // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)            // Recover from panics
	r.Use(router.chiMiddleware.CORS())        // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitoring tools can poll frequently
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddlewareFunc(middleware.PrometheusMetrics))
		r.Use(chiPathValue) // Bridge Chi URL params to r.PathValue()

		r.Get("/customers", router.handler.Customers)
		r.Get("/customers/{id}", router.handler.CustomerSummary)
		r.Get("/products", router.handler.Products)
		r.Get("/products/{id}", router.handler.ProductSummary)
		r.Get("/sales", router.handler.Sales)
		r.Get("/tickets", router.handler.Tickets)
		r.Get("/suppliers", router.handler.Suppliers)
		r.Get("/recommendations/{id}", router.handler.Recommendations)
		r.Get("/dashboard/stats", router.handler.DashboardStats)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// chiPathValue middleware injects Chi URL params into the request so handlers
// using r.PathValue() continue to work. This bridges Chi's chi.URLParam()
// with Go 1.22+'s r.PathValue().
func chiPathValue(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		if rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if i < len(rctx.URLParams.Values) {
					r.SetPathValue(key, rctx.URLParams.Values[i])
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
