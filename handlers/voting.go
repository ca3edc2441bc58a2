// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/identity"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type VotingHandler struct {
	ledger     *ledger.Ledger
	trustProxy bool
}

// NewVotingHandler creates a voting handler. With trustProxy set the client
// address is read from X-Forwarded-For or X-Real-IP.
func NewVotingHandler(l *ledger.Ledger, trustProxy bool) *VotingHandler {
	return &VotingHandler{ledger: l, trustProxy: trustProxy}
}

// SubmitVote handles POST /api/vote
// The voter is identified by X-Wallet-Address or the client IP.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate := req.VoteOptionID
	if candidate == "" {
		candidate = req.Candidate
	}

	voteID, err := h.ledger.SubmitVote(r.Context(), identity.FromRequest(r, h.trustProxy), candidate)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Success: true,
		Message: "Vote recorded.",
		VoteID:  voteID,
	})
}
