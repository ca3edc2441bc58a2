// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/metrics"
)

// MaxKeyLen bounds event and request identifiers in bytes.
const MaxKeyLen = 256

// Confirmation is the state of an event after a confirm call.
// Replayed is set when the request ID had already been applied.
type Confirmation struct {
	EventID           string
	Status            string
	ConfirmationCount int
	Replayed          bool
}

// Tracker converges externally reported events to a terminal status.
type Tracker struct {
	store Store
	cfg   Config
	now   func() time.Time
}

func NewTracker(store Store, cfg Config) *Tracker {
	return &Tracker{store: store, cfg: cfg.withDefaults(), now: time.Now}
}

// Threshold returns the number of confirmations that confirms an event.
func (t *Tracker) Threshold() int {
	return t.cfg.Threshold
}

// Confirm applies one confirmation identified by requestID to eventID.
// Replaying a request ID returns the current state without counting it
// again.
func (t *Tracker) Confirm(ctx context.Context, eventID, requestID string) (Confirmation, error) {
	eventID = strings.TrimSpace(eventID)
	requestID = strings.TrimSpace(requestID)
	if eventID == "" || requestID == "" {
		return Confirmation{}, invalid("eventId and requestId are required")
	}
	if len(eventID) > MaxKeyLen || len(requestID) > MaxKeyLen {
		return Confirmation{}, invalid("eventId and requestId must be at most %d bytes", MaxKeyLen)
	}

	event, applied, err := t.store.ApplyConfirmation(ctx, eventID, requestID, t.cfg.Threshold, t.now().UTC())
	if err != nil {
		err = t.cfg.transient("apply_confirmation", err, "event_id", eventID, "request_id", requestID)
		if errors.Is(err, ErrTransient) {
			metrics.EventSyncs.WithLabelValues(metrics.OutcomeFailed).Inc()
		}
		return Confirmation{}, err
	}

	c := Confirmation{
		EventID:           event.EventID,
		Status:            event.Status,
		ConfirmationCount: event.ConfirmationCount,
		Replayed:          !applied,
	}

	if c.Replayed {
		metrics.EventSyncs.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		t.cfg.Logger.Info("confirmation replay ignored", "event_id", eventID, "request_id", requestID, "status", c.Status)
	} else {
		metrics.EventSyncs.WithLabelValues(metrics.OutcomeAccepted).Inc()
		t.cfg.Logger.Info("confirmation applied", "event_id", eventID, "status", c.Status, "count", c.ConfirmationCount)
	}

	return c, nil
}
