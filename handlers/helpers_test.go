// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

// testEnv bundles a SQLite-backed store with handlers built on it
type testEnv struct {
	store   *db.Store
	voting  *VotingHandler
	results *ResultsHandler
	events  *EventHandler
	health  *HealthHandler
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)
	return newTestEnv(store)
}

func newTestEnv(store ledger.Store) *testEnv {
	lcfg := testutil.LedgerConfig(testutil.GetTestConfig())

	env := &testEnv{
		voting:  NewVotingHandler(ledger.NewLedger(store, lcfg), true),
		results: NewResultsHandler(ledger.NewAggregator(store, lcfg)),
		events:  NewEventHandler(ledger.NewTracker(store, lcfg)),
		health:  NewHealthHandler(store, db.TypeSQLite),
	}
	if s, ok := store.(*db.Store); ok {
		env.store = s
	}
	return env
}

// brokenStore fails every operation, like a database that went away
type brokenStore struct {
	calls int
}

var errUnavailable = errors.New("connection refused")

func (s *brokenStore) InsertVote(ctx context.Context, vote models.Vote) error {
	s.calls++
	return errUnavailable
}

func (s *brokenStore) ApplyConfirmation(ctx context.Context, eventID, requestID string, threshold int, at time.Time) (models.ConfirmationEvent, bool, error) {
	s.calls++
	return models.ConfirmationEvent{}, false, errUnavailable
}

func (s *brokenStore) CountVotes(ctx context.Context) ([]models.CandidateCount, error) {
	s.calls++
	return nil, errUnavailable
}

func (s *brokenStore) Ping(ctx context.Context) error {
	s.calls++
	return errUnavailable
}
