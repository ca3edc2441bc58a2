// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores votes and confirmation events in SQL.

# Opening a Database

Open connects to PostgreSQL (lib/pq) or SQLite (modernc.org/sqlite) and
pings it before returning:

	conn, err := db.Open(ctx, db.TypeSQLite, "file:quickly-vote.db")
	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}
	store := db.NewStore(conn)

SQLite connections run with a busy timeout, foreign keys on and immediate
transactions, through a single pooled connection.

Safe to call CreateSchema multiple times - uses IF NOT EXISTS for all tables
and indexes.

# Tables

  - vote: One row per voter identity (UNIQUE vote_voter_identity_key)
  - confirmation_event: Count and status per event
  - applied_request: Request IDs already applied to an event

# Atomicity

The unique constraint on vote.voter_identity is the only duplicate check.
A violation on either driver is reported as ledger.ErrDuplicateVote.

ApplyConfirmation runs in one transaction: it creates the event if missing,
records the request ID, and advances the event only when the request ID was
new. A replayed request ID changes nothing and returns the current state.

# Relationships

	confirmation_event 1──* applied_request

applied_request uses ON DELETE CASCADE.
*/
package db
