// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer for polls, options, and votes.

# Poll Store

PollStore covers poll creation and reads:

	s := store.NewPollStore(db)
	poll, err := s.CreatePollWithOptions(ctx, title, desc, ownerID, options)
	polls, err := s.FetchPollsWithVotes(ctx)

CreatePollWithOptions is a single transaction, so a failed option insert
never leaves an orphaned poll behind.

# Vote Recorder

VoteRecorder casts votes and reads back live results:

	r := store.NewVoteRecorder(db)
	vote, err := r.Record(ctx, pollID, optionID, user.ID)
	results, err := r.Results(ctx, pollID)

Record's state machine: poll lookup (ErrPollNotFound / ErrPollInactive),
option lookup (ErrInvalidOption), then a direct insert. The votes
table's UNIQUE(poll_id, user_id) constraint - not any in-process check -
decides whether the user already voted; a violation surfaces as
ErrAlreadyVoted. Option counters move in the same transaction as the
vote row.

# Error Mapping

Sentinel errors carry the user-facing message for their HTTP status.
IsUniqueViolation recognizes constraint violations from both lib/pq
(code 23505) and modernc.org/sqlite.
*/
package store
