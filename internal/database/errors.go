// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package database

import (
	"errors"
	"io"

	"github.com/contexq/contexq/internal/logging"
)

// Sentinel errors returned by query methods.
var (
	// ErrNotFound indicates an entity id did not resolve to any row.
	ErrNotFound = errors.New("not found")

	// ErrUnknownEntity indicates a listing request named an entity type
	// that does not map to any table.
	ErrUnknownEntity = errors.New("unknown entity type")
)

// closeWithLog closes a resource and logs any error.
// Use this where a Close failure should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
