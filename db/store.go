// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/models"
)

// Store persists votes and confirmation events in PostgreSQL or SQLite.
// Every method is one statement or one transaction.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// InsertVote inserts the vote and lets the unique constraint on
// voter_identity decide whether it is the first one.
func (s *Store) InsertVote(ctx context.Context, vote models.Vote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (id, voter_identity, candidate, cast_at)
		VALUES ($1, $2, $3, $4)
	`, vote.ID, vote.VoterIdentity, vote.Candidate, vote.CastAt)

	if err != nil {
		if isVoteIdentityViolation(err) {
			return ledger.ErrDuplicateVote
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	return nil
}

// ApplyConfirmation runs in one transaction: make sure the event row exists,
// record the request ID, and advance the event only if the request ID was
// new. The UPDATE computes the new state from the row it locks, so
// concurrent confirmations of one event are applied one after another, and
// a racing replay of the same request ID waits on the applied_request key
// and then sees it as taken.
func (s *Store) ApplyConfirmation(ctx context.Context, eventID, requestID string, threshold int, at time.Time) (models.ConfirmationEvent, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.ConfirmationEvent{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO confirmation_event (event_id, confirmation_count, status, created_at)
		VALUES ($1, 0, 'PENDING', $2)
		ON CONFLICT (event_id) DO NOTHING
	`, eventID, at)
	if err != nil {
		return models.ConfirmationEvent{}, false, fmt.Errorf("failed to create event: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO applied_request (event_id, request_id, applied_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, request_id) DO NOTHING
	`, eventID, requestID, at)
	if err != nil {
		return models.ConfirmationEvent{}, false, fmt.Errorf("failed to record request: %w", err)
	}

	recorded, err := res.RowsAffected()
	if err != nil {
		return models.ConfirmationEvent{}, false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	// Requests seen before change nothing. SET expressions all read the
	// pre-update row.
	if recorded == 1 {
		_, err = tx.ExecContext(ctx, `
			UPDATE confirmation_event
			SET confirmation_count = CASE
			        WHEN status = 'PENDING' AND confirmation_count < $2 THEN confirmation_count + 1
			        ELSE confirmation_count
			    END,
			    status = CASE
			        WHEN status <> 'PENDING' THEN 'FINALIZED'
			        WHEN confirmation_count + 1 >= $2 THEN 'CONFIRMED'
			        ELSE 'PENDING'
			    END,
			    last_confirmed_at = $3
			WHERE event_id = $1
		`, eventID, threshold, at)
		if err != nil {
			return models.ConfirmationEvent{}, false, fmt.Errorf("failed to advance event: %w", err)
		}
	}

	event, err := scanEvent(tx.QueryRowContext(ctx, `
		SELECT event_id, confirmation_count, status, last_confirmed_at
		FROM confirmation_event
		WHERE event_id = $1
	`, eventID))
	if err != nil {
		return models.ConfirmationEvent{}, false, fmt.Errorf("failed to read event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.ConfirmationEvent{}, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return event, recorded == 1, nil
}

// CountVotes groups votes by candidate in a single statement, so the counts
// come from one snapshot.
func (s *Store) CountVotes(ctx context.Context) ([]models.CandidateCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate, COUNT(*) AS votes
		FROM vote
		GROUP BY candidate
		ORDER BY votes DESC, candidate ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := []models.CandidateCount{}
	for rows.Next() {
		var c models.CandidateCount
		if err := rows.Scan(&c.Candidate, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vote counts: %w", err)
	}

	return counts, nil
}

// GetEvent returns the stored state of an event.
func (s *Store) GetEvent(ctx context.Context, eventID string) (models.ConfirmationEvent, error) {
	event, err := scanEvent(s.db.QueryRowContext(ctx, `
		SELECT event_id, confirmation_count, status, last_confirmed_at
		FROM confirmation_event
		WHERE event_id = $1
	`, eventID))
	if err != nil {
		return models.ConfirmationEvent{}, fmt.Errorf("failed to read event: %w", err)
	}
	return event, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func scanEvent(row *sql.Row) (models.ConfirmationEvent, error) {
	var (
		event     models.ConfirmationEvent
		confirmed sql.NullTime
	)
	if err := row.Scan(&event.EventID, &event.ConfirmationCount, &event.Status, &confirmed); err != nil {
		return models.ConfirmationEvent{}, err
	}
	if confirmed.Valid {
		event.LastConfirmedAt = confirmed.Time
	}
	return event, nil
}

// isVoteIdentityViolation reports whether err is the unique constraint on
// vote.voter_identity firing, for either driver.
func isVoteIdentityViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == voteIdentityConstraint
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code != sqlite3.SQLITE_CONSTRAINT_UNIQUE && code&0xff != sqlite3.SQLITE_CONSTRAINT {
			return false
		}
		return strings.Contains(liteErr.Error(), "vote.voter_identity")
	}

	return false
}

var _ ledger.Store = (*Store)(nil)
