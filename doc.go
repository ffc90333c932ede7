// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollboard API server.

Pollboard is a live polling service: authenticated users create polls
with 2-10 options, each user gets exactly one vote per poll, and anyone
can watch the results move in real time.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3318 -d "file:pollboard.db" -token-secret "..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path
  - TOKEN_SECRET (-token-secret): HS256 secret shared with the identity
    service

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_ISSUER (-token-issuer): expected token issuer
  - MAX_BODY_BYTES (-max-body): request body cap (default: 1 MiB)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON envelope helpers
  - models: Request/response and domain types
  - validate: Payload validation and normalization
  - auth: Bearer token authentication (JWT resolver)
  - store: Poll store and vote recorder
  - audit: Best-effort audit sink
  - db: Connection handling and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.

# One Vote Per User

Double voting is prevented by a UNIQUE(poll_id, user_id) constraint in
the votes table, not by application logic. Concurrent votes from the
same user collapse into one atomic insert decided by the database, which
also holds across multiple server instances.
*/
package main
