// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

// Store is the persistence boundary. Each method is one indivisible
// operation; implementations must keep that true across processes, not only
// across goroutines.
type Store interface {
	// InsertVote stores vote unless a vote for the same voter identity
	// exists, in which case it returns ErrDuplicateVote and stores nothing.
	InsertVote(ctx context.Context, vote models.Vote) error

	// ApplyConfirmation records requestID against eventID and advances the
	// event by one confirmation, creating the event on first sight. When
	// requestID was already recorded it returns the current event with
	// applied set to false and changes nothing.
	ApplyConfirmation(ctx context.Context, eventID, requestID string, threshold int, at time.Time) (event models.ConfirmationEvent, applied bool, err error)

	// CountVotes returns per-candidate counts from a single consistent read.
	CountVotes(ctx context.Context) ([]models.CandidateCount, error)

	Ping(ctx context.Context) error
}
