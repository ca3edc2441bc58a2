// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Confirmation status constants
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusFinalized = "FINALIZED"
)

// DefaultConfirmationThreshold is the number of distinct confirmations an
// event needs before it is considered confirmed.
const DefaultConfirmationThreshold = 2

// Domain types

type Vote struct {
	ID            string    `json:"id"`
	VoterIdentity string    `json:"-"` // Never expose in JSON
	Candidate     string    `json:"candidate"`
	CastAt        time.Time `json:"cast_at"`
}

type ConfirmationEvent struct {
	EventID           string    `json:"event_id"`
	ConfirmationCount int       `json:"confirmation_count"`
	Status            string    `json:"status"`
	LastConfirmedAt   time.Time `json:"last_confirmed_at"`
}

// Advance applies one accepted confirmation to the event. A pending event
// gains a confirmation, never past threshold, and becomes confirmed on
// reaching it. An event that already reached threshold becomes finalized with
// its count unchanged.
func (e ConfirmationEvent) Advance(threshold int, at time.Time) ConfirmationEvent {
	if e.Status == "" {
		e.Status = StatusPending
	}

	if e.Status == StatusPending {
		if e.ConfirmationCount < threshold {
			e.ConfirmationCount++
		}
		if e.ConfirmationCount >= threshold {
			e.Status = StatusConfirmed
		}
	} else {
		e.Status = StatusFinalized
	}

	e.LastConfirmedAt = at
	return e
}

type CandidateCount struct {
	Candidate string `json:"optionId"`
	Count     int    `json:"count"`
}

type Tally struct {
	TotalVotes int              `json:"totalVotes"`
	Counts     []CandidateCount `json:"results"`
}
