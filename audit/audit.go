// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types recorded by handlers.
const (
	EventPollCreated = "poll_created"
	EventVoteCast    = "vote_cast"
)

type Event struct {
	Type      string
	ActorID   string
	PollID    string
	OptionID  string
	IPHash    string
	UserAgent string
}

// Sink receives audit events. Recording is best effort at every call
// site: a failed Record must never fail the request being audited.
// Handlers take a Sink as a dependency; there is no package-level
// default.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// Store writes events to the audit_log table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(ctx context.Context, e Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, event_type, actor_id, poll_id, option_id, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.NewString(), e.Type, e.ActorID,
		nullable(e.PollID), nullable(e.OptionID), nullable(e.IPHash), nullable(e.UserAgent),
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Nop discards all events. Used in tests.
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }
