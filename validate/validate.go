// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/models"
)

// Validation limits for poll payloads.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 200
	DescriptionMaxLen = 500
	OptionMinCount    = 2
	OptionMaxCount    = 10
	OptionMaxLen      = 100
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	ErrInvalidOptionID = errors.New("option_id must be a valid UUID")
)

// NormalizedPoll is a poll-creation payload after trimming and markup
// stripping, ready for the store.
type NormalizedPoll struct {
	Title       string
	Description string
	Options     []string
}

// StripMarkup removes anything tag-shaped from user-supplied text.
// Sanitization runs before length checks so limits apply to what would
// actually be stored.
func StripMarkup(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// CreatePoll validates and normalizes a poll-creation request. It
// returns either the normalized payload or a list of field errors; it
// never touches the database.
func CreatePoll(req models.CreatePollRequest) (NormalizedPoll, []models.FieldError) {
	var errs []models.FieldError

	// Limits are in characters, not bytes; multibyte text gets the
	// same budget as ASCII.
	title := strings.TrimSpace(StripMarkup(req.Title))
	if utf8.RuneCountInString(title) < TitleMinLen {
		errs = append(errs, models.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at least %d characters", TitleMinLen),
		})
	} else if utf8.RuneCountInString(title) > TitleMaxLen {
		errs = append(errs, models.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters", TitleMaxLen),
		})
	}

	description := strings.TrimSpace(StripMarkup(req.Description))
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		errs = append(errs, models.FieldError{
			Field:   "description",
			Message: fmt.Sprintf("description must be at most %d characters", DescriptionMaxLen),
		})
	}

	options := make([]string, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, strings.TrimSpace(StripMarkup(opt)))
	}

	if len(options) < OptionMinCount || len(options) > OptionMaxCount {
		errs = append(errs, models.FieldError{
			Field:   "options",
			Message: fmt.Sprintf("polls must have between %d and %d options", OptionMinCount, OptionMaxCount),
		})
	}

	for _, opt := range options {
		if opt == "" || utf8.RuneCountInString(opt) > OptionMaxLen {
			errs = append(errs, models.FieldError{
				Field:   "options",
				Message: fmt.Sprintf("each option must be between 1 and %d characters", OptionMaxLen),
			})
			break
		}
	}

	// Uniqueness is case-sensitive and judged after trimming.
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		if seen[opt] {
			errs = append(errs, models.FieldError{
				Field:   "options",
				Message: "options must be unique",
			})
			break
		}
		seen[opt] = true
	}

	if len(errs) > 0 {
		return NormalizedPoll{}, errs
	}

	return NormalizedPoll{Title: title, Description: description, Options: options}, nil
}

// OptionID checks that s is a textual UUID of version 1 through 5.
// Malformed identifiers are rejected here, before any store access.
func OptionID(s string) error {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ErrInvalidOptionID
	}
	if v := id.Version(); v < 1 || v > 5 {
		return ErrInvalidOptionID
	}
	return nil
}
