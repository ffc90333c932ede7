// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollboard API.

# Handler Types

Each handler is a struct whose dependencies are injected via its
constructor:

	pollHandler := handlers.NewPollHandler(db, resolver, sink, cfg)
	votingHandler := handlers.NewVotingHandler(db, resolver, sink, cfg)

  - PollHandler: poll creation and listing
  - VotingHandler: vote casting and live results

# Request Pipeline

Every write endpoint runs the same linear pipeline: parse body →
validate → authenticate → store call → envelope response. Validation
and authentication both complete before any store access, so malformed
or unauthorized requests cost no database work.

	POST /polls           → CreatePoll (auth, 201)
	GET  /polls           → ListPolls (public, 200)
	POST /polls/{id}/vote → CastVote (auth, 201; 409 on duplicate)
	GET  /polls/{id}/vote → GetPollResults (public, 200)

# Double Voting

CastVote never checks "has this user voted" before writing. The insert
goes straight to the store and the votes table's UNIQUE(poll_id,
user_id) constraint decides; a violation comes back as 409. See the
store package.

# Auditing

Both write endpoints record an audit event through the injected sink.
Recording is fire-and-forget: failures are logged and the request
proceeds.
*/
package handlers
