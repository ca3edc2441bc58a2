// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics defines the Prometheus counters exported on /metrics:
// votes_total{outcome}, event_sync_total{outcome},
// store_transient_failures_total{op} and rate_limited_requests_total.
package metrics
