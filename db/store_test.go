// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(testutil.SetupTestDB(t))
}

func vote(id, voter, candidate string) models.Vote {
	return models.Vote{ID: id, VoterIdentity: voter, Candidate: candidate, CastAt: time.Now().UTC()}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	// SetupTestDB already created it once
	require.NoError(t, db.CreateSchema(context.Background(), conn))
}

func TestInsertVote_Duplicate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertVote(ctx, vote("v1", "203.0.113.7", "A")))

	err := s.InsertVote(ctx, vote("v2", "203.0.113.7", "B"))
	assert.ErrorIs(t, err, ledger.ErrDuplicateVote)

	counts, err := s.CountVotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CandidateCount{{Candidate: "A", Count: 1}}, counts)
}

func TestInsertVote_OtherConstraintIsNotDuplicate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertVote(ctx, vote("v1", "203.0.113.7", "A")))

	// Same primary key, different voter: a storage error, not a duplicate vote
	err := s.InsertVote(ctx, vote("v1", "203.0.113.8", "A"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ledger.ErrDuplicateVote)
}

func TestInsertVote_Concurrent(t *testing.T) {
	s := newStore(t)

	var accepted, duplicates atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.InsertVote(context.Background(), vote(fmt.Sprintf("v%d", i), "198.51.100.1", "A"))
			switch {
			case err == nil:
				accepted.Add(1)
			case err == ledger.ErrDuplicateVote:
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, int32(19), duplicates.Load())
}

func TestApplyConfirmation_Sequence(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		requestID string
		applied   bool
		status    string
		count     int
	}{
		{"r1", true, models.StatusPending, 1},
		{"r1", false, models.StatusPending, 1},
		{"r2", true, models.StatusConfirmed, 2},
		{"r3", true, models.StatusFinalized, 2},
		{"r4", true, models.StatusFinalized, 2},
		{"r2", false, models.StatusFinalized, 2},
	}

	for i, step := range steps {
		event, applied, err := s.ApplyConfirmation(ctx, "evt-1", step.requestID, 2, at.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, "evt-1", event.EventID)
		assert.Equal(t, step.applied, applied, "step %d", i)
		assert.Equal(t, step.status, event.Status, "step %d", i)
		assert.Equal(t, step.count, event.ConfirmationCount, "step %d", i)
	}

	event, err := s.GetEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinalized, event.Status)
	assert.True(t, event.LastConfirmedAt.Equal(at.Add(4*time.Minute)), "got %s", event.LastConfirmedAt)
}

func TestApplyConfirmation_ThresholdOne(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	event, applied, err := s.ApplyConfirmation(ctx, "evt", "r1", 1, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, models.StatusConfirmed, event.Status)
	assert.Equal(t, 1, event.ConfirmationCount)
}

func TestApplyConfirmation_LoweredThreshold(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	at := time.Now().UTC()

	for i, threshold := range []int{3, 3} {
		event, _, err := s.ApplyConfirmation(ctx, "evt", fmt.Sprintf("r%d", i), threshold, at)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, event.Status)
	}

	// The count keeps its value rather than passing the new threshold
	event, applied, err := s.ApplyConfirmation(ctx, "evt", "r-low", 1, at)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, models.StatusConfirmed, event.Status)
	assert.Equal(t, 2, event.ConfirmationCount)
}

func TestApplyConfirmation_ConcurrentReplay(t *testing.T) {
	s := newStore(t)

	var applied atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.ApplyConfirmation(context.Background(), "evt", "same", 2, time.Now().UTC())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if ok {
				applied.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), applied.Load())

	event, err := s.GetEvent(context.Background(), "evt")
	require.NoError(t, err)
	assert.Equal(t, 1, event.ConfirmationCount)
	assert.Equal(t, models.StatusPending, event.Status)
}

func TestGetEvent_Missing(t *testing.T) {
	s := newStore(t)

	_, err := s.GetEvent(context.Background(), "nope")
	assert.Error(t, err)
}

func TestCountVotes_Ordering(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i, c := range []string{"mu", "zeta", "alpha", "zeta", "mu", "alpha", "omega"} {
		require.NoError(t, s.InsertVote(ctx, vote(fmt.Sprintf("v%d", i), fmt.Sprintf("10.2.0.%d", i), c)))
	}

	counts, err := s.CountVotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CandidateCount{
		{Candidate: "alpha", Count: 2},
		{Candidate: "mu", Count: 2},
		{Candidate: "zeta", Count: 2},
		{Candidate: "omega", Count: 1},
	}, counts)
}

func TestPing(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := db.NewStore(conn)

	require.NoError(t, s.Ping(context.Background()))

	conn.Close()
	assert.Error(t, s.Ping(context.Background()))
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := db.Open(context.Background(), "mongo", "mongodb://localhost")
	assert.Error(t, err)
}
