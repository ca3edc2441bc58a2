// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first when present.

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type (sqlite, postgres, memory)
	-threshold      Confirmations needed to confirm an event
	-retry-after    Seconds clients wait after a transient failure
	-identity-salt  Identity hashing salt

# Environment Variables

Flags fall back to environment variables:

	PORT                   → -p (default 3318)
	DATABASE_URL           → -d (default file:quickly-vote.db for sqlite)
	DATABASE_TYPE          → -t (default sqlite)
	CONFIRMATION_THRESHOLD → -threshold (default 2)
	RETRY_AFTER_SECONDS    → -retry-after (default 50)
	TRUST_PROXY            → -trust-proxy (default false)
	IDENTITY_SALT          → -identity-salt

Environment only:

	RATE_LIMIT_MAX         Requests per window (default 100)
	RATE_LIMIT_WINDOW_MS   Window length (default 900000)
	RATE_LIMIT_CAPACITY    Clients tracked at once (default 10000)
	CORS_ORIGINS           Comma-separated extra origins

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error when:

  - IDENTITY_SALT is missing
  - DATABASE_TYPE is postgres and no URL is given
  - the threshold, retry-after or rate limit settings are not positive
  - TRUST_PROXY is not a boolean

Set TRUST_PROXY only behind a proxy that overwrites X-Forwarded-For. Without
it voters and rate limit buckets are keyed by the connection address.
*/
package cliparse
