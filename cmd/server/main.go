// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

// Command server runs the Contexq business insights API.
//
// On first start it bulk-loads the generated business dataset from CSV
// sources into an embedded DuckDB store, then serves read-only analytics
// endpoints: entity listings, customer and product summaries, co-purchase
// recommendations and dashboard statistics.
//
// The HTTP listener starts immediately; data endpoints answer 503 until the
// one-time load completes, which the /api/v1/health/ready probe reflects.
//
// Configuration is layered: environment variables > YAML config file >
// built-in defaults. See internal/config for the full surface.
//
// Usage:
//
//	CORS_ORIGINS=http://localhost:3000 DATA_DIR=./data ./server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/contexq/contexq/internal/api"
	"github.com/contexq/contexq/internal/config"
	"github.com/contexq/contexq/internal/database"
	"github.com/contexq/contexq/internal/logging"
	"github.com/contexq/contexq/internal/metrics"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("data_dir", cfg.Database.DataDir).
		Msg("Starting Contexq")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startTime).Seconds())
			}
		}
	}()

	// Load the dataset in the background. The readiness barrier keeps data
	// endpoints answering 503 until this finishes, so the listener can come
	// up immediately. A failed load cancels the run context and shuts the
	// process down; serving an empty store forever would be worse.
	go func() {
		if err := db.EnsureLoaded(ctx); err != nil {
			logging.Error().Err(err).Msg("Dataset load failed")
			cancel()
		}
	}()

	router := api.NewRouter(db, cfg)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErrCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server error")
		}
	case <-ctx.Done():
		logging.Info().Msg("Run context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
