// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg, registry)

NewHandler wraps the mux for serving. From the outside in: request IDs,
CORS, rate limiting (only /api paths), then the routes.

	handler, err := router.NewHandler(store, cfg, registry)

# Endpoints

Health:

	GET /api/health
	GET /healthz

Voting:

	POST /api/vote          - Cast the caller's single vote
	GET  /api/vote/results  - Live tally

Event confirmations:

	POST /api/event/sync    - Apply one confirmation

Operations:

	GET /metrics            - Prometheus metrics
*/
package router
