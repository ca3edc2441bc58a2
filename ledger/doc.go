// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger holds the vote and confirmation rules of the service.

# Components

All three share one Store and one Config:

	cfg := ledger.Config{Threshold: 2, RetryAfter: 50 * time.Second, IdentitySalt: salt}
	votes := ledger.NewLedger(store, cfg)
	tracker := ledger.NewTracker(store, cfg)
	results := ledger.NewAggregator(store, cfg)

  - Ledger.SubmitVote: accepts at most one vote per voter identity
  - Tracker.Confirm: applies a confirmation at most once per request ID
  - Aggregator.Tally: counts votes per candidate

# One Vote Per Identity

SubmitVote never reads before writing. The identity is normalized, then the
store inserts the vote only if no vote for that identity exists, as one
operation. Of any number of concurrent submissions for one identity exactly
one succeeds; the rest get ErrDuplicateVote.

# Confirmations

An event exists once its first request ID is applied: it then has count 1
and is PENDING, or already CONFIRMED when Threshold is 1. Each later new
request ID:

	PENDING   → count+1 (never past Threshold), CONFIRMED once count reaches it
	CONFIRMED → FINALIZED, count unchanged
	FINALIZED → unchanged

A request ID already applied to the event is a replay: Confirm returns the
current state with Replayed set and nothing changes.

# Results

Tally returns counts ordered by count descending, then candidate ascending,
with TotalVotes equal to their sum. The counts come from one read, so every
accepted vote is counted exactly once.

# Errors

  - ErrInvalidArgument: bad input, detected before the store is touched
  - ErrDuplicateVote: the identity has voted already
  - *TransientError (matches ErrTransient): the store failed; nothing was
    applied and RetryAfter tells the caller when to try again

Context cancellation is returned as is and is never reported as transient.
*/
package ledger
