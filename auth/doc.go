// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves bearer tokens to authenticated users.

# Request Authentication

Authenticate runs three checks in order, cheapest first:

 1. Authorization header present with the "Bearer " prefix,
    else ErrInvalidHeaderFormat
 2. token at least 10 characters after trimming,
    else ErrInvalidTokenFormat
 3. the TokenResolver accepts the token, else ErrUnauthorized

	user, err := auth.Authenticate(r, resolver)
	if err != nil {
		// 401 with err.Error() as the message
	}

The format checks exist so malformed requests never reach the resolver.

# Token Resolvers

TokenResolver is the seam between this service and the identity
provider. JWTResolver is the built-in implementation: HS256 with a
shared secret, optional issuer check, subject required:

	resolver := &auth.JWTResolver{Secret: secret, Issuer: "pollboard"}

MintToken issues tokens for tests and local development.

# IP Hashing

HashIP produces a salted one-way hash of a client IP for the audit log:

	ipHash := auth.HashIP(middleware.GetClientIP(r), salt)
*/
package auth
