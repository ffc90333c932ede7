// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, options ([]string)
  - CastVoteRequest: option_id

# Response Types

Every response embeds the uniform envelope (success, message) so clients
can branch on success alone:

  - CreatePollResponse: pollId, poll
  - ListPollsResponse: polls
  - CastVoteResponse: vote, poll (live results)
  - PollResultsResponse: poll (counts and percentages)
  - ErrorResponse: message, optional field errors

# Domain Types

Internal data structures:

  - Poll: poll metadata, options, and total vote count
  - PollOption: one selectable choice with its vote counter
  - Vote: one user's single choice on one poll
  - AuthenticatedUser: per-request identity from the token resolver
  - OptionResult / PollResults: read-time aggregation with percentages
*/
package models
