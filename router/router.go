// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(store ledger.Store, cfg cliparse.Config, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	lcfg := ledger.Config{
		Threshold:    cfg.ConfirmationThreshold,
		RetryAfter:   cfg.RetryAfter,
		IdentitySalt: cfg.IdentitySalt,
	}

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(ledger.NewLedger(store, lcfg), cfg.TrustProxy)
	resultsHandler := handlers.NewResultsHandler(ledger.NewAggregator(store, lcfg))
	eventHandler := handlers.NewEventHandler(ledger.NewTracker(store, lcfg))
	healthHandler := handlers.NewHealthHandler(store, cfg.DatabaseType)

	// Health checks
	mux.HandleFunc("GET /api/health", middleware.WithLogging(healthHandler.Health))
	mux.HandleFunc("GET /healthz", healthHandler.Health)

	// Voting
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("GET /api/vote/results", middleware.WithLogging(resultsHandler.GetResults))

	// Event confirmations
	mux.HandleFunc("POST /api/event/sync", middleware.WithLogging(eventHandler.SyncEvent))

	// Metrics
	mux.Handle("GET /metrics", metrics.Handler(gatherer))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}

// NewHandler wraps the routes with request IDs, CORS and rate limiting.
func NewHandler(store ledger.Store, cfg cliparse.Config, gatherer prometheus.Gatherer) (http.Handler, error) {
	limiter, err := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, cfg.RateLimitCapacity, cfg.TrustProxy)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	mux := NewRouter(store, cfg, gatherer)

	// Preflight requests are answered by CORS before they reach the limiter
	var handler http.Handler = limiter.Middleware(mux)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = middleware.WithRequestID(handler)

	return handler, nil
}
