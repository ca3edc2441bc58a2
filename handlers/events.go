// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type EventHandler struct {
	tracker *ledger.Tracker
}

func NewEventHandler(t *ledger.Tracker) *EventHandler {
	return &EventHandler{tracker: t}
}

// SyncEvent handles POST /api/event/sync
// Each distinct requestId counts once; resending one returns the current
// state with replayed set.
func (h *EventHandler) SyncEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventSyncRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := h.tracker.Confirm(r.Context(), req.EventID, req.RequestID)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventSyncResponse{
		Success:           true,
		Message:           fmt.Sprintf("Event '%s' processed. Status: %s.", c.EventID, c.Status),
		Status:            c.Status,
		ConfirmationCount: c.ConfirmationCount,
		Replayed:          c.Replayed,
	})
}
