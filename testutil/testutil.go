// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/models"
)

// SetupTestDB creates a fresh SQLite database with the full schema in the
// test's temp directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "test.db")

	conn, err := db.Open(context.Background(), db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                  3318,
		DatabaseType:          db.TypeSQLite,
		DatabaseURL:           "file:test.db",
		ConfirmationThreshold: models.DefaultConfirmationThreshold,
		RetryAfter:            ledger.DefaultRetryAfter,
		RateLimitMax:          1000,
		RateLimitWindow:       time.Minute,
		RateLimitCapacity:     100,
		CORSOrigins:           []string{"http://localhost:3000"},
		TrustProxy:            true,
		IdentitySalt:          "test-identity-salt",
	}
}

// LedgerConfig returns the ledger settings matching cfg
func LedgerConfig(cfg cliparse.Config) ledger.Config {
	return ledger.Config{
		Threshold:    cfg.ConfirmationThreshold,
		RetryAfter:   cfg.RetryAfter,
		IdentitySalt: cfg.IdentitySalt,
	}
}

// InsertTestVote stores a vote directly, bypassing validation
func InsertTestVote(t *testing.T, store ledger.Store, voterIdentity, candidate string) string {
	t.Helper()

	vote := models.Vote{
		ID:            uuid.NewString(),
		VoterIdentity: voterIdentity,
		Candidate:     candidate,
		CastAt:        time.Now().UTC(),
	}
	if err := store.InsertVote(context.Background(), vote); err != nil {
		t.Fatalf("Failed to insert test vote: %v", err)
	}

	return vote.ID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// FromIP returns headers that make a request come from ip behind a trusted proxy
func FromIP(ip string) map[string]string {
	return map[string]string{"X-Forwarded-For": ip}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
