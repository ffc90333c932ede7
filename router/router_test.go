// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pollboard/audit"
	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/router"
	"github.com/danielhkuo/pollboard/testutil"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	cfg := testutil.GetTestConfig()
	resolver := &auth.JWTResolver{
		Secret: []byte(cfg.TokenSecret),
		Issuer: cfg.TokenIssuer,
	}
	return router.NewRouter(conn, resolver, audit.Nop{}, cfg)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := testutil.MakeRequest("GET", "/health", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Health body = %q, want OK", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := testutil.MakeRequest("GET", "/", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "pollboard API v1" {
		t.Errorf("Root body = %q", w.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		method string
		path   string
	}{
		{"DELETE", "/polls"},
		{"PUT", "/polls"},
		{"DELETE", "/polls/abc/vote"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, tt.path, nil, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
		})
	}
}

func TestRoutesExist(t *testing.T) {
	mux := newTestMux(t)

	// None of the registered routes should fall through to 404 or 405;
	// failing auth or validation proves the handler was reached.
	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/polls"},
		{"GET", "/polls"},
		{"POST", "/polls/some-id/vote"},
		{"GET", "/polls/some-id/vote"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, tt.path, nil, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered (405)", tt.method, tt.path)
			}
		})
	}
}
