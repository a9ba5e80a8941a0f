// Contexq - Business Insights Dashboard API
// Copyright 2026 Contexq Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/contexq/contexq

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/contexq/contexq/internal/config"
	"github.com/contexq/contexq/internal/database"
	"github.com/contexq/contexq/internal/models"
)

// testDBSemaphore serializes DuckDB lifecycles. Concurrent CGO database
// open/close across parallel tests is flaky.
var testDBSemaphore = make(chan struct{}, 1)

// writeDataset writes a small consistent dataset into dir.
//
// Customer 1 (Acme, Tech, Europe) buys products 1 and 2 in transaction 1 and
// product 2 again in transaction 3 (spend 80 over 3 line items). Customer 2
// (Globex, Retail, Asia) buys product 1 in transaction 2 (spend 25).
// Product 3 (Suite) is never sold, which exercises the popularity fallback.
// Customer 1 has one open ticket with sentiment -0.2.
func writeDataset(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		"customers.csv": "customer_id,customer_name,industry,region,join_date\n" +
			"1,Acme,Tech,Europe,2024-01-01\n" +
			"2,Globex,Retail,Asia,2024-02-01\n",
		"products.csv": "product_id,product_name,category,cost_price,sales_price\n" +
			"1,Widget,Hardware,10.0,25.0\n" +
			"2,Gadget,Hardware,5.0,15.0\n" +
			"3,Suite,Software,50.0,300.0\n",
		"sales_transactions.csv": "transaction_id,customer_id,product_id,quantity,sale_amount,transaction_date\n" +
			"1,1,1,2,50.0,2025-01-10\n" +
			"1,1,2,1,15.0,2025-01-10\n" +
			"2,2,1,1,25.0,2025-02-05\n" +
			"3,1,2,1,15.0,2025-02-20\n",
		"support_tickets.csv": "ticket_id,customer_id,product_id,issue_type,status,creation_date,resolution_date,sentiment_score\n" +
			"1,1,1,Defect,Open,2025-01-15,,-0.2\n" +
			"2,2,1,Question,Closed,2025-02-01,2025-02-03,0.5\n",
		"supplier_data.csv": "supplier_id,supplier_name,product_id,lead_time_days,reliability_score\n" +
			"1,Partwerks,1,12,0.95\n" +
			"2,Chipline,2,30,0.8\n",
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// testConfig returns a configuration suitable for handler tests: in-memory
// store, rate limiting off so request loops do not trip the limiter.
func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8000,
			Timeout:         10 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{
			Path:      ":memory:",
			DataDir:   dataDir,
			MaxMemory: "1GB",
		},
		API: config.APIConfig{
			DefaultPageSize: 100,
			MaxPageSize:     1000,
		},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"http://localhost:3000"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
		Logging: config.LoggingConfig{Level: "error", Format: "console"},
	}
}

// newTestHandler builds the full routing tree over a freshly loaded store.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	db, cfg := newTestDB(t)
	if err := db.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("EnsureLoaded failed: %v", err)
	}
	return NewRouter(db, cfg).SetupChi()
}

// newUnloadedHandler builds the routing tree over a store whose dataset load
// has not run, for testing readiness gating.
func newUnloadedHandler(t *testing.T) http.Handler {
	t.Helper()

	db, cfg := newTestDB(t)
	return NewRouter(db, cfg).SetupChi()
}

func newTestDB(t *testing.T) (*database.DB, *config.Config) {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	dir := t.TempDir()
	writeDataset(t, dir)
	cfg := testConfig(dir)

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return db, cfg
}

func doGet(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with raw data for typed re-decoding.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

// decodeData asserts a success envelope and unmarshals its data into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("response status = %q, want success (error: %+v)", env.Status, env.Error)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("Failed to decode data %q: %v", env.Data, err)
	}
}

// requireErrorCode asserts an error envelope with the given HTTP status and code.
func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, httpStatus int, code string) {
	t.Helper()

	if rec.Code != httpStatus {
		t.Fatalf("HTTP status = %d, want %d (body %q)", rec.Code, httpStatus, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" {
		t.Errorf("response status = %q, want error", env.Status)
	}
	if env.Error == nil || env.Error.Code != code {
		t.Errorf("error = %+v, want code %s", env.Error, code)
	}
}
