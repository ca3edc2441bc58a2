// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
)

// writeLedgerError maps a ledger error onto the HTTP response.
func writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidArgument):
		middleware.ErrorResponse(w, http.StatusBadRequest, invalidMessage(err))

	case errors.Is(err, ledger.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusForbidden, "Duplicate vote detected. This identity has already cast a vote.")

	case errors.Is(err, ledger.ErrTransient):
		retryAfter, _ := ledger.RetryAfter(err)
		middleware.TransientResponse(w, retryAfter)

	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the response
		slog.Info("request canceled", "request_id", middleware.RequestID(r.Context()), "path", r.URL.Path)

	default:
		slog.Error("unexpected ledger error",
			"request_id", middleware.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// invalidMessage strips the sentinel prefix so clients see only the reason.
func invalidMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), ledger.ErrInvalidArgument.Error()+": ")
	if msg == "" {
		return "Invalid request"
	}
	return msg
}
