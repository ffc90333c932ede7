// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/models"
)

// VoteRecorder casts votes and reads back live results.
type VoteRecorder struct {
	db *sql.DB
}

func NewVoteRecorder(db *sql.DB) *VoteRecorder {
	return &VoteRecorder{db: db}
}

// Record casts userID's vote for optionID on pollID.
//
// Double voting is not checked with a read before the write - that
// would race under concurrent requests from the same user. The insert
// is attempted directly and the votes table's UNIQUE(poll_id, user_id)
// constraint is the sole arbiter; a violation maps to ErrAlreadyVoted.
// The option counter moves in the same transaction as the vote row, so
// a rejected duplicate never touches it.
func (r *VoteRecorder) Record(ctx context.Context, pollID, optionID, userID string) (*models.Vote, error) {
	var active bool
	err := r.db.QueryRowContext(ctx, `
		SELECT is_active FROM polls WHERE id = $1
	`, pollID).Scan(&active)

	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup poll: %w", err)
	}
	if !active {
		return nil, ErrPollInactive
	}

	var optionExists bool
	err = r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM poll_options WHERE id = $1 AND poll_id = $2)
	`, optionID, pollID).Scan(&optionExists)
	if err != nil {
		return nil, fmt.Errorf("lookup option: %w", err)
	}
	if !optionExists {
		return nil, ErrInvalidOption
	}

	vote := &models.Vote{
		ID:        uuid.NewString(),
		PollID:    pollID,
		OptionID:  optionID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (id, poll_id, option_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.PollID, vote.OptionID, vote.UserID, vote.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("insert vote: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE poll_options SET votes = votes + 1 WHERE id = $1
	`, optionID)
	if err != nil {
		return nil, fmt.Errorf("update option count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return vote, nil
}

// Results returns the poll's live results: options ordered by vote
// count descending (input order as tiebreak) with percentages of the
// total, one decimal place. Zero votes means zero percentages.
func (r *VoteRecorder) Results(ctx context.Context, pollID string) (*models.PollResults, error) {
	results := &models.PollResults{ID: pollID}
	err := r.db.QueryRowContext(ctx, `
		SELECT title, is_active FROM polls WHERE id = $1
	`, pollID).Scan(&results.Title, &results.IsActive)

	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup poll: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, votes
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY votes DESC, ordinal
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results.Results = []models.OptionResult{}
	for rows.Next() {
		var opt models.OptionResult
		if err := rows.Scan(&opt.ID, &opt.Text, &opt.Votes); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results.Results = append(results.Results, opt)
		results.TotalVotes += opt.Votes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	if results.TotalVotes > 0 {
		for i := range results.Results {
			share := float64(results.Results[i].Votes) / float64(results.TotalVotes)
			results.Results[i].Percentage = math.Round(share*1000) / 10
		}
	}

	return results, nil
}
