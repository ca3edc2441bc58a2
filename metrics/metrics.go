// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

var (
	Votes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "votes_total",
		Help: "Vote submissions by outcome.",
	}, []string{"outcome"})

	EventSyncs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_sync_total",
		Help: "Event confirmations by outcome.",
	}, []string{"outcome"})

	StoreFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_transient_failures_total",
		Help: "Storage operations that failed and were reported as transient.",
	}, []string{"op"})

	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limited_requests_total",
		Help: "Requests rejected by the rate limiter.",
	})
)

// Register adds every collector to reg. Collectors already registered with
// reg are left as they are.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{Votes, EventSyncs, StoreFailures, RateLimited} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
