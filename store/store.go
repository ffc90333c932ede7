// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/pollboard/models"
)

// Sentinel errors double as the user-facing messages for their status
// codes (404, 400, 400, 409).
var (
	ErrPollNotFound  = errors.New("Poll not found")
	ErrPollInactive  = errors.New("Poll is no longer active")
	ErrInvalidOption = errors.New("Invalid option for this poll")
	ErrAlreadyVoted  = errors.New("You have already voted on this poll")
)

// IsUniqueViolation reports whether err is a uniqueness-constraint
// violation from either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// PollStore performs poll and option reads/writes. It holds no state of
// its own; all durable state lives in the database.
type PollStore struct {
	db *sql.DB
}

func NewPollStore(db *sql.DB) *PollStore {
	return &PollStore{db: db}
}

// CreatePollWithOptions inserts a poll and its options in a single
// transaction. Option order follows input order; counters start at zero.
func (s *PollStore) CreatePollWithOptions(ctx context.Context, title, description, ownerID string, options []string) (*models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	poll := &models.Poll{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		IsActive:    true,
		CreatedBy:   ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, title, description, is_active, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, poll.ID, poll.Title, poll.Description, poll.IsActive, poll.CreatedBy, poll.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert poll: %w", err)
	}

	for i, text := range options {
		opt := models.PollOption{
			ID:       uuid.NewString(),
			PollID:   poll.ID,
			Text:     text,
			Position: i,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_options (id, poll_id, text, votes, ordinal)
			VALUES ($1, $2, $3, $4, $5)
		`, opt.ID, opt.PollID, opt.Text, opt.Votes, opt.Position)
		if err != nil {
			return nil, fmt.Errorf("insert option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return poll, nil
}

// FetchPollsWithVotes returns all active polls newest first, each with
// its options in creation order and total_votes summed from the option
// counters. Aggregation happens at read time; nothing is materialized
// per poll.
func (s *PollStore) FetchPollsWithVotes(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, is_active, created_by, created_at
		FROM polls
		WHERE is_active = $1
		ORDER BY created_at DESC
	`, true)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		var description sql.NullString
		if err := rows.Scan(&poll.ID, &poll.Title, &description, &poll.IsActive, &poll.CreatedBy, &poll.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		poll.Description = description.String
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate polls: %w", err)
	}

	for i := range polls {
		options, err := s.optionsForPoll(ctx, polls[i].ID)
		if err != nil {
			return nil, err
		}
		polls[i].Options = options
		for _, opt := range options {
			polls[i].TotalVotes += opt.Votes
		}
	}

	return polls, nil
}

// GetPoll returns a single poll with its options, or ErrPollNotFound.
func (s *PollStore) GetPoll(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, is_active, created_by, created_at
		FROM polls
		WHERE id = $1
	`, id).Scan(&poll.ID, &poll.Title, &description, &poll.IsActive, &poll.CreatedBy, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query poll: %w", err)
	}
	poll.Description = description.String

	options, err := s.optionsForPoll(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options
	for _, opt := range options {
		poll.TotalVotes += opt.Votes
	}

	return &poll, nil
}

func (s *PollStore) optionsForPoll(ctx context.Context, pollID string) ([]models.PollOption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, text, votes, ordinal
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY ordinal
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	options := []models.PollOption{}
	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Votes, &opt.Position); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate options: %w", err)
	}

	return options, nil
}
