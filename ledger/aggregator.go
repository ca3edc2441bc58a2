// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"sort"

	"github.com/danielhkuo/quickly-vote/models"
)

// Aggregator produces vote tallies. It never writes.
type Aggregator struct {
	store Store
	cfg   Config
}

func NewAggregator(store Store, cfg Config) *Aggregator {
	return &Aggregator{store: store, cfg: cfg.withDefaults()}
}

// Tally counts accepted votes per candidate, most votes first and ties by
// candidate ascending.
func (a *Aggregator) Tally(ctx context.Context) (models.Tally, error) {
	counts, err := a.store.CountVotes(ctx)
	if err != nil {
		return models.Tally{}, a.cfg.transient("count_votes", err)
	}

	// Stores already order; sorting again keeps the contract independent of them.
	SortCounts(counts)

	tally := models.Tally{Counts: counts}
	for _, c := range counts {
		tally.TotalVotes += c.Count
	}
	if tally.Counts == nil {
		tally.Counts = []models.CandidateCount{}
	}

	return tally, nil
}

// SortCounts orders counts by count descending, then candidate ascending.
func SortCounts(counts []models.CandidateCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Candidate < counts[j].Candidate
	})
}
