// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

const serviceName = "quickly-vote"

type HealthHandler struct {
	store     ledger.Store
	database  string
	startedAt time.Time
	now       func() time.Time
}

func NewHealthHandler(store ledger.Store, database string) *HealthHandler {
	return &HealthHandler{
		store:     store,
		database:  database,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Health handles GET /api/health and GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	now := h.now()
	resp := models.HealthResponse{
		Status:    "ok",
		Service:   serviceName,
		Database:  "connected",
		Driver:    h.database,
		Timestamp: now.UTC(),
		Uptime:    strings.TrimSpace(humanize.RelTime(h.startedAt, now, "", "")),
	}

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("health check failed",
			"request_id", middleware.RequestID(r.Context()),
			"database", h.database,
			"error", err,
		)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database connection failed"
		middleware.JSONResponse(w, http.StatusInternalServerError, resp)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
