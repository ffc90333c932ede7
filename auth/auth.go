// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollboard/models"
)

const (
	bearerPrefix = "Bearer "

	// Anything shorter cannot be a real token; reject it without
	// bothering the resolver.
	minTokenLen = 10
)

// Sentinel errors double as the user-facing 401 messages.
var (
	ErrInvalidHeaderFormat = errors.New("Invalid authorization header format")
	ErrInvalidTokenFormat  = errors.New("Invalid token format")
	ErrUnauthorized        = errors.New("Invalid or expired token")
)

// TokenResolver exchanges a bearer token for an authenticated user.
// Implementations may call out to an external provider; the JWT
// implementation in this package verifies locally.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*models.AuthenticatedUser, error)
}

// Authenticate extracts the bearer token from a request and resolves it
// to a user. The format checks run first so malformed requests are
// rejected cheaply, before the resolver is consulted. Authentication
// failure is terminal for the request; there are no retries.
func Authenticate(r *http.Request, resolver TokenResolver) (*models.AuthenticatedUser, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, ErrInvalidHeaderFormat
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if len(token) < minTokenLen {
		return nil, ErrInvalidTokenFormat
	}

	user, err := resolver.Resolve(r.Context(), token)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}

	return user, nil
}

// HashIP creates a one-way hash of an IP address for privacy.
// Includes salt to prevent rainbow table attacks.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
