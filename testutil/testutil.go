// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each test gets its own database, named after the test so
// nothing leaks between them.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:testdb?mode=memory",
		DatabaseType: "sqlite",
		TokenSecret:  "test-token-secret",
		TokenIssuer:  "pollboard-test",
		MaxBodyBytes: cliparse.DefaultMaxBodyBytes,
	}
}

// MintTestToken issues a valid bearer token for the given user
func MintTestToken(t *testing.T, cfg cliparse.Config, userID string) string {
	t.Helper()

	token, err := auth.MintToken([]byte(cfg.TokenSecret), cfg.TokenIssuer, userID, userID+"@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Failed to mint test token: %v", err)
	}
	return token
}

// CreateTestPoll creates a poll with the given options directly in the
// database and returns the poll ID and option IDs (in input order).
func CreateTestPoll(t *testing.T, conn *sql.DB, ownerID string, active bool, options ...string) (pollID string, optionIDs []string) {
	t.Helper()

	pollID = uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO polls (id, title, description, is_active, created_by, created_at)
		VALUES ($1, 'Test Poll', 'A test poll', $2, $3, $4)
	`, pollID, active, ownerID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, text := range options {
		optionID := uuid.NewString()
		_, err := conn.Exec(`
			INSERT INTO poll_options (id, poll_id, text, votes, ordinal)
			VALUES ($1, $2, $3, 0, $4)
		`, optionID, pollID, text, i)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
		optionIDs = append(optionIDs, optionID)
	}

	return pollID, optionIDs
}

// CreateTestVote records a vote directly in the database, keeping the
// option counter in step the way the vote recorder would.
func CreateTestVote(t *testing.T, conn *sql.DB, pollID, optionID, userID string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO votes (id, poll_id, option_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, pollID, optionID, userID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	_, err = conn.Exec(`UPDATE poll_options SET votes = votes + 1 WHERE id = $1`, optionID)
	if err != nil {
		t.Fatalf("Failed to bump option counter: %v", err)
	}

	return voteID
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
