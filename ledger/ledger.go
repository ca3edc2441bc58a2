// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/identity"
	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/models"
)

// MaxCandidateLen bounds the candidate label in bytes.
const MaxCandidateLen = 200

// Config carries the settings shared by Ledger, Tracker and Aggregator.
type Config struct {
	Threshold    int
	RetryAfter   time.Duration
	IdentitySalt string
	Logger       *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Threshold <= 0 {
		c.Threshold = models.DefaultConfirmationThreshold
	}
	if c.RetryAfter <= 0 {
		c.RetryAfter = DefaultRetryAfter
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// transient logs a storage failure and wraps it with the retry hint.
// Context cancellation is passed through: the caller left, nothing to retry.
func (c Config) transient(op string, err error, attrs ...any) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	metrics.StoreFailures.WithLabelValues(op).Inc()

	fields := make([]any, 0, len(attrs)+6)
	fields = append(fields, "op", op, "error", err, "retry_after_s", int(c.RetryAfter.Seconds()))
	fields = append(fields, attrs...)
	c.Logger.Error("storage operation failed", fields...)

	return &TransientError{Op: op, RetryAfter: c.RetryAfter, Err: err}
}

// Ledger accepts at most one vote per voter identity.
type Ledger struct {
	store Store
	cfg   Config
	now   func() time.Time
}

func NewLedger(store Store, cfg Config) *Ledger {
	return &Ledger{store: store, cfg: cfg.withDefaults(), now: time.Now}
}

// SubmitVote records a vote for candidate under voterIdentity and returns the
// new vote's ID. It returns ErrInvalidArgument for a blank candidate or an
// identity that cannot be normalized, ErrDuplicateVote when the identity has
// already voted, and a *TransientError when the store is unavailable.
func (l *Ledger) SubmitVote(ctx context.Context, voterIdentity, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", invalid("candidate is required")
	}
	if len(candidate) > MaxCandidateLen || !utf8.ValidString(candidate) {
		return "", invalid("candidate must be valid UTF-8 of at most %d bytes", MaxCandidateLen)
	}

	voter, err := identity.Normalize(voterIdentity)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	vote := models.Vote{
		ID:            uuid.NewString(),
		VoterIdentity: voter,
		Candidate:     candidate,
		CastAt:        l.now().UTC(),
	}

	// The insert is the check: the store rejects a second vote for voter.
	err = l.store.InsertVote(ctx, vote)
	if errors.Is(err, ErrDuplicateVote) {
		metrics.Votes.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		l.cfg.Logger.Info("duplicate vote blocked", "identity_hash", auth.HashIdentity(voter, l.cfg.IdentitySalt))
		return "", ErrDuplicateVote
	}
	if err != nil {
		err = l.cfg.transient("insert_vote", err, "identity_hash", auth.HashIdentity(voter, l.cfg.IdentitySalt))
		if errors.Is(err, ErrTransient) {
			metrics.Votes.WithLabelValues(metrics.OutcomeFailed).Inc()
		}
		return "", err
	}

	metrics.Votes.WithLabelValues(metrics.OutcomeAccepted).Inc()
	l.cfg.Logger.Info("vote recorded", "vote_id", vote.ID, "identity_hash", auth.HashIdentity(voter, l.cfg.IdentitySalt))

	return vote.ID, nil
}
