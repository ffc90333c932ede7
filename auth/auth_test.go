// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/pollboard/models"
)

// stubResolver returns a fixed user or error regardless of the token.
type stubResolver struct {
	user *models.AuthenticatedUser
	err  error
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*models.AuthenticatedUser, error) {
	return s.user, s.err
}

func TestAuthenticate(t *testing.T) {
	okResolver := &stubResolver{user: &models.AuthenticatedUser{ID: "user-1"}}

	tests := []struct {
		name     string
		header   string
		resolver TokenResolver
		wantErr  error
	}{
		{
			name:     "valid token",
			header:   "Bearer a-perfectly-fine-token",
			resolver: okResolver,
			wantErr:  nil,
		},
		{
			name:     "missing header",
			header:   "",
			resolver: okResolver,
			wantErr:  ErrInvalidHeaderFormat,
		},
		{
			name:     "wrong scheme",
			header:   "Basic dXNlcjpwYXNz",
			resolver: okResolver,
			wantErr:  ErrInvalidHeaderFormat,
		},
		{
			name:     "lowercase bearer rejected",
			header:   "bearer a-perfectly-fine-token",
			resolver: okResolver,
			wantErr:  ErrInvalidHeaderFormat,
		},
		{
			name:     "token too short",
			header:   "Bearer short",
			resolver: okResolver,
			wantErr:  ErrInvalidTokenFormat,
		},
		{
			name:     "token all whitespace",
			header:   "Bearer               ",
			resolver: okResolver,
			wantErr:  ErrInvalidTokenFormat,
		},
		{
			name:     "resolver error",
			header:   "Bearer a-perfectly-fine-token",
			resolver: &stubResolver{err: errors.New("provider down")},
			wantErr:  ErrUnauthorized,
		},
		{
			name:     "resolver returns no user",
			header:   "Bearer a-perfectly-fine-token",
			resolver: &stubResolver{},
			wantErr:  ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/polls", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			user, err := Authenticate(req, tt.resolver)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (user == nil || user.ID != "user-1") {
				t.Errorf("Authenticate() user = %+v, want user-1", user)
			}
		})
	}
}

func TestAuthenticateShortCircuitsResolver(t *testing.T) {
	called := false
	resolver := resolverFunc(func(ctx context.Context, token string) (*models.AuthenticatedUser, error) {
		called = true
		return &models.AuthenticatedUser{ID: "user-1"}, nil
	})

	req := httptest.NewRequest("POST", "/polls", nil)
	req.Header.Set("Authorization", "Basic nope")

	if _, err := Authenticate(req, resolver); !errors.Is(err, ErrInvalidHeaderFormat) {
		t.Fatalf("Authenticate() error = %v, want %v", err, ErrInvalidHeaderFormat)
	}
	if called {
		t.Error("resolver was called for a malformed header")
	}
}

type resolverFunc func(ctx context.Context, token string) (*models.AuthenticatedUser, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (*models.AuthenticatedUser, error) {
	return f(ctx, token)
}

func TestJWTResolver(t *testing.T) {
	secret := []byte("test-secret-0123456789")
	resolver := &JWTResolver{Secret: secret, Issuer: "pollboard-test"}
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		token, err := MintToken(secret, "pollboard-test", "user-42", "u42@example.com", time.Hour)
		if err != nil {
			t.Fatalf("MintToken() error = %v", err)
		}

		user, err := resolver.Resolve(ctx, token)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if user.ID != "user-42" {
			t.Errorf("Resolve() ID = %q, want %q", user.ID, "user-42")
		}
		if user.Email != "u42@example.com" {
			t.Errorf("Resolve() Email = %q, want %q", user.Email, "u42@example.com")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := MintToken([]byte("some-other-secret-123"), "pollboard-test", "user-42", "", time.Hour)
		if _, err := resolver.Resolve(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resolve() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, _ := MintToken(secret, "someone-else", "user-42", "", time.Hour)
		if _, err := resolver.Resolve(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resolve() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, _ := MintToken(secret, "pollboard-test", "user-42", "", -time.Hour)
		if _, err := resolver.Resolve(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resolve() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		token, _ := MintToken(secret, "pollboard-test", "", "", time.Hour)
		if _, err := resolver.Resolve(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resolve() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("wrong signing method", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			Issuer:    "pollboard-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
		if err != nil {
			t.Fatalf("failed to sign HS512 token: %v", err)
		}
		if _, err := resolver.Resolve(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resolve() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := resolver.Resolve(ctx, "not.a.jwt"); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resolve() error = %v, want %v", err, ErrUnauthorized)
		}
	})
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("192.168.1.1", "salt")
	h2 := HashIP("192.168.1.1", "salt")
	if h1 != h2 {
		t.Error("HashIP() is not deterministic")
	}

	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.1", "pepper") {
		t.Error("HashIP() produced same hash for different salts")
	}

	if len(h1) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(h1))
	}
}
