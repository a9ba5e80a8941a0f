// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

// Package config provides layered application configuration via Koanf v2.
//
// Precedence (highest wins): environment variables > YAML config file >
// built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default 0.0.0.0.
	Host string `koanf:"host"`

	// Port is the listen port. Default 8000.
	Port int `koanf:"port"`

	// Timeout bounds request read/write operations.
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB store settings.
type DatabaseConfig struct {
	// Path is the persistent store file. Deleting it forces a reload
	// from the CSV sources on next startup.
	Path string `koanf:"path"`

	// DataDir is the directory containing the flat-file sources
	// (customers.csv, products.csv, sales_transactions.csv,
	// support_tickets.csv, supplier_data.csv).
	DataDir string `koanf:"data_dir"`

	// MaxMemory is the DuckDB memory limit, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// APIConfig holds request boundary settings.
type APIConfig struct {
	// DefaultPageSize is the listing page size when limit is omitted.
	DefaultPageSize int `koanf:"default_page_size"`

	// MaxPageSize caps the limit parameter on listing endpoints.
	MaxPageSize int `koanf:"max_page_size"`
}

// SecurityConfig holds boundary hardening settings.
type SecurityConfig struct {
	// CORSOrigins is the allow-list of request origins. Configured via
	// the CORS_ORIGINS environment variable as a comma-separated list.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the per-IP request budget per window.
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limiting window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns off rate limiting (tests, development).
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would prevent startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d: must be 1-65535", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Database.DataDir == "" {
		return fmt.Errorf("database data_dir must not be empty")
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("invalid default page size %d: must be >= 1", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("max page size %d must be >= default page size %d",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin must be configured")
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logging format %q: must be json or console", c.Logging.Format)
	}
	return nil
}
