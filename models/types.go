// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type CastVoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types
//
// Every response carries success and message so callers can branch on
// success alone. Validation failures additionally carry field-level
// details suitable for form display.

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type CreatePollResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PollID  string `json:"pollId"`
	Poll    Poll   `json:"poll"`
}

type ListPollsResponse struct {
	Success bool   `json:"success"`
	Polls   []Poll `json:"polls"`
}

type CastVoteResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Vote    Vote        `json:"vote"`
	Poll    PollResults `json:"poll"`
}

type PollResultsResponse struct {
	Success bool        `json:"success"`
	Poll    PollResults `json:"poll"`
}

// Domain types

type Poll struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"is_active"`
	CreatedBy   string       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	Options     []PollOption `json:"options,omitempty"`
	TotalVotes  int          `json:"total_votes"`
}

type PollOption struct {
	ID       string `json:"id"`
	PollID   string `json:"poll_id"`
	Text     string `json:"text"`
	Votes    int    `json:"votes"`
	Position int    `json:"position"`
}

type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthenticatedUser is the identity resolved from a bearer token.
// It is never persisted; it exists only for the lifetime of a request.
type AuthenticatedUser struct {
	ID    string
	Email string
}

// Result types

type OptionResult struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type PollResults struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	IsActive   bool           `json:"is_active"`
	TotalVotes int            `json:"total_votes"`
	Results    []OptionResult `json:"results"`
}
