// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote records one vote per voter identity, tracks confirmations of
external events and serves the live tally.

# Starting the Server

	IDENTITY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -identity-salt ...

# Configuration

Required settings:

  - IDENTITY_SALT (-identity-salt): Secret for identity fingerprints in logs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string
  - CONFIRMATION_THRESHOLD (-threshold): default 2
  - RETRY_AFTER_SECONDS (-retry-after): default 50
  - TRUST_PROXY (-trust-proxy): read client IPs from forwarding headers (default: false)

# Architecture

  - handlers: HTTP request handlers (votes, results, event sync, health)
  - router: Route definitions using Go 1.22+ routing
  - ledger: Vote ledger, confirmation tracker and result aggregator
  - db: SQL storage (PostgreSQL, SQLite)
  - memstore: In-memory storage
  - identity: Voter identity normalization
  - middleware: Request IDs, CORS, rate limiting, logging, JSON helpers
  - metrics: Prometheus counters
  - models: Request/response and domain types
  - auth: Identity hashing
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
