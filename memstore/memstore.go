// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/models"
)

type eventRecord struct {
	event   models.ConfirmationEvent
	applied map[string]struct{}
}

// Store keeps votes and confirmation events in process memory. Every method
// runs under one lock, which makes each of them a single atomic step.
type Store struct {
	mu sync.Mutex

	votes  map[string]models.Vote // keyed by voter identity
	events map[string]*eventRecord
}

func New() *Store {
	return &Store{
		votes:  make(map[string]models.Vote),
		events: make(map[string]*eventRecord),
	}
}

func (s *Store) InsertVote(ctx context.Context, vote models.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.votes[vote.VoterIdentity]; ok {
		return ledger.ErrDuplicateVote
	}
	s.votes[vote.VoterIdentity] = vote
	return nil
}

func (s *Store) ApplyConfirmation(ctx context.Context, eventID, requestID string, threshold int, at time.Time) (models.ConfirmationEvent, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.ConfirmationEvent{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.events[eventID]
	if !ok {
		rec = &eventRecord{
			event:   models.ConfirmationEvent{EventID: eventID, Status: models.StatusPending},
			applied: make(map[string]struct{}),
		}
		s.events[eventID] = rec
	}

	if _, seen := rec.applied[requestID]; seen {
		return rec.event, false, nil
	}

	rec.applied[requestID] = struct{}{}
	rec.event = rec.event.Advance(threshold, at)
	return rec.event, true, nil
}

func (s *Store) CountVotes(ctx context.Context) ([]models.CandidateCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	byCandidate := make(map[string]int)
	for _, v := range s.votes {
		byCandidate[v.Candidate]++
	}
	s.mu.Unlock()

	counts := make([]models.CandidateCount, 0, len(byCandidate))
	for candidate, n := range byCandidate {
		counts = append(counts, models.CandidateCount{Candidate: candidate, Count: n})
	}
	ledger.SortCounts(counts)
	return counts, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Votes returns a copy of all stored votes.
func (s *Store) Votes() []models.Vote {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Vote, 0, len(s.votes))
	for _, v := range s.votes {
		out = append(out, v)
	}
	return out
}

var _ ledger.Store = (*Store)(nil)
