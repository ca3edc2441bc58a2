// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type ResultsHandler struct {
	aggregator *ledger.Aggregator
}

func NewResultsHandler(a *ledger.Aggregator) *ResultsHandler {
	return &ResultsHandler{aggregator: a}
}

// GetResults handles GET /api/vote/results
// Results are live: every accepted vote is counted immediately.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	tally, err := h.aggregator.Tally(r.Context())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Success:    true,
		TotalVotes: tally.TotalVotes,
		Results:    tally.Counts,
	})
}
