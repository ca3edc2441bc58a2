// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// voteIdentityConstraint is the unique constraint that makes the vote insert
// its own duplicate check.
const voteIdentityConstraint = "vote_voter_identity_key"

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The statements stay within the SQL shared by PostgreSQL and SQLite.
const schema = `
-- Votes: one per voter identity, ever
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    voter_identity TEXT NOT NULL,
    candidate TEXT NOT NULL CHECK (length(candidate) > 0),
    cast_at TIMESTAMP NOT NULL,
    CONSTRAINT vote_voter_identity_key UNIQUE (voter_identity)
);

CREATE INDEX IF NOT EXISTS idx_vote_candidate ON vote(candidate);

-- Confirmation events
CREATE TABLE IF NOT EXISTS confirmation_event (
    event_id TEXT PRIMARY KEY,
    confirmation_count INTEGER NOT NULL DEFAULT 0 CHECK (confirmation_count >= 0),
    status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'CONFIRMED', 'FINALIZED')),
    created_at TIMESTAMP NOT NULL,
    last_confirmed_at TIMESTAMP
);

-- Request IDs already applied to an event
CREATE TABLE IF NOT EXISTS applied_request (
    event_id TEXT NOT NULL REFERENCES confirmation_event(event_id) ON DELETE CASCADE,
    request_id TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL,
    PRIMARY KEY (event_id, request_id)
);
`
