// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

PostgreSQL (lib/pq) for production, SQLite (modernc.org/sqlite, pure Go)
for development and tests. Queries elsewhere use $N placeholders, which
both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - polls: poll metadata and active flag
  - poll_options: options per poll with denormalized vote counters
  - votes: one row per (poll, user); UNIQUE(poll_id, user_id) is the
    double-vote arbiter
  - audit_log: best-effort event records, write-only from this service

# Relationships

	polls 1──* poll_options
	polls 1──* votes
	poll_options 1──* votes

All foreign keys use ON DELETE CASCADE.
*/
package db
