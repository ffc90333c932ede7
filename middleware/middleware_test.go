// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/pollboard/models"
)

func TestWithLogging(t *testing.T) {
	// Create a simple handler that returns OK
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	// Wrap with logging middleware
	wrappedHandler := WithLogging(testHandler)

	// Create test request and recorder
	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	// Execute
	wrappedHandler(w, req)

	// Verify handler was called
	if !handlerCalled {
		t.Error("Expected handler to be called")
	}

	// Verify response was written correctly
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "simple struct",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "error envelope",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Success: false, Message: "missing field"},
			expected:   `{"success":false,"message":"missing field"}`,
		},
		{
			name:       "array data",
			statusCode: http.StatusOK,
			data:       []string{"a", "b", "c"},
			expected:   `["a","b","c"]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tc.expected {
				t.Errorf("Expected body %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "Poll not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("Expected success=false")
	}
	if resp.Message != "Poll not found" {
		t.Errorf("Expected message 'Poll not found', got '%s'", resp.Message)
	}
}

func TestValidationErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ValidationErrorResponse(w, []models.FieldError{
		{Field: "title", Message: "title must be at least 3 characters"},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "title" {
		t.Errorf("Expected one title field error, got %+v", resp.Errors)
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		body := bytes.NewReader([]byte(`{"title":"hello"}`))
		req := httptest.NewRequest("POST", "/polls", body)
		w := httptest.NewRecorder()

		var parsed models.CreatePollRequest
		if err := ParseJSONBody(w, req, 1<<20, &parsed); err != nil {
			t.Fatalf("ParseJSONBody() error = %v", err)
		}
		if parsed.Title != "hello" {
			t.Errorf("Expected title 'hello', got '%s'", parsed.Title)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		body := bytes.NewReader([]byte(`{not json`))
		req := httptest.NewRequest("POST", "/polls", body)
		w := httptest.NewRecorder()

		var parsed models.CreatePollRequest
		err := ParseJSONBody(w, req, 1<<20, &parsed)
		if err == nil {
			t.Fatal("Expected error for invalid JSON")
		}
		if errors.Is(err, ErrBodyTooLarge) {
			t.Error("Invalid JSON should not report ErrBodyTooLarge")
		}
	})

	t.Run("body over limit", func(t *testing.T) {
		big := `{"title":"` + strings.Repeat("x", 100) + `"}`
		req := httptest.NewRequest("POST", "/polls", strings.NewReader(big))
		w := httptest.NewRecorder()

		var parsed models.CreatePollRequest
		err := ParseJSONBody(w, req, 16, &parsed)
		if !errors.Is(err, ErrBodyTooLarge) {
			t.Errorf("Expected ErrBodyTooLarge, got %v", err)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "X-Forwarded-For single",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.5",
		},
		{
			name:       "X-Forwarded-For chain",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.5",
		},
		{
			name:       "X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.9",
		},
		{
			name:       "RemoteAddr fallback strips port",
			headers:    nil,
			remoteAddr: "203.0.113.7:5678",
			expected:   "203.0.113.7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expected {
				t.Errorf("GetClientIP() = %s, want %s", got, tc.expected)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("OPTIONS", "/polls", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Expected wildcard origin, got '%s'", origin)
	}
	if headers := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(headers, "Authorization") {
		t.Errorf("Expected Authorization in allowed headers, got '%s'", headers)
	}
}

func TestCORSNeverAllowsCredentials(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Identity is bearer-token only; reflecting the origin together
	// with a credentials grant would let any site ride along on cookie
	// credentials, so neither may appear.
	req := httptest.NewRequest("GET", "/polls", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if creds := w.Header().Get("Access-Control-Allow-Credentials"); creds != "" {
		t.Errorf("Expected no credentials header, got '%s'", creds)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Expected wildcard origin, got '%s'", origin)
	}
}
