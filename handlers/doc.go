// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

Each handler is a struct wrapping one ledger component:

  - VotingHandler: Vote submission (ledger.Ledger)
  - ResultsHandler: Live tally (ledger.Aggregator)
  - EventHandler: Event confirmation sync (ledger.Tracker)
  - HealthHandler: Service and database health (ledger.Store)

	votingHandler := handlers.NewVotingHandler(ledger.NewLedger(store, cfg), trustProxy)

# Voting

	POST /api/vote          → SubmitVote
	GET  /api/vote/results  → GetResults

The body names the candidate as vote_option_id (or candidate). The voter is
the X-Wallet-Address header when present, otherwise the client IP. Requests
addressed to localhost all count as 127.0.0.1.

A second vote from the same identity is rejected with 403, whatever the
candidate.

# Event Sync

	POST /api/event/sync → SyncEvent

Body: {"eventId": "...", "requestId": "..."}. Each distinct requestId
advances the event once: PENDING until the threshold is reached, then
CONFIRMED, then FINALIZED on the next distinct confirmation. A repeated
requestId returns the current state with replayed set to true.

# Error Mapping

  - invalid input: 400, nothing is stored
  - duplicate vote: 403
  - storage unavailable: 503 with Retry-After and error_type TRANSIENT_FAILURE
  - anything else: 500

# Health

	GET /api/health, GET /healthz → Health

Returns 500 with database "disconnected" when the store cannot be reached.
*/
package handlers
