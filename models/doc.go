// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitVoteRequest: vote_option_id (or candidate)
  - EventSyncRequest: eventId, requestId

# Response Types

Types for JSON responses:

  - SubmitVoteResponse: success, message, voteId
  - EventSyncResponse: status, confirmationCount, replayed
  - ResultsResponse: totalVotes, results
  - HealthResponse: status, service, database, driver, timestamp, uptime
  - TransientErrorResponse: message, error_type
  - ErrorResponse: success, error, message

# Domain Types

  - Vote: one accepted vote; the voter identity never leaves the server
  - ConfirmationEvent: confirmation count and status of one event
  - CandidateCount, Tally: aggregated results

# Confirmation Status

An event moves PENDING -> CONFIRMED -> FINALIZED and never backwards.
ConfirmationEvent.Advance applies one new confirmation:

	next := event.Advance(models.DefaultConfirmationThreshold, time.Now())

A PENDING event gains one confirmation and becomes CONFIRMED once the count
reaches the threshold. A CONFIRMED event becomes FINALIZED without changing
its count. A FINALIZED event is left as is.
*/
package models
