// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupCounter(families []*dto.MetricFamily, name, label, value string) (float64, bool) {
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue(), true
				}
			}
		}
	}
	return 0, false
}

func counterValue(t *testing.T, families []*dto.MetricFamily, name, label, value string) float64 {
	t.Helper()

	v, ok := lookupCounter(families, name, label, value)
	if !ok {
		t.Fatalf("metric %s{%s=%q} not found", name, label, value)
	}
	return v
}

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()

	require.NoError(t, Register(reg))
	assert.NoError(t, Register(reg), "registering again should be a no-op")
}

func TestCountersGathered(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))

	before, err := reg.Gather()
	require.NoError(t, err)

	Votes.WithLabelValues(OutcomeAccepted).Inc()
	EventSyncs.WithLabelValues(OutcomeDuplicate).Inc()
	StoreFailures.WithLabelValues("insert_vote").Inc()

	after, err := reg.Gather()
	require.NoError(t, err)

	lookupBefore := func(name, label, value string) float64 {
		v, _ := lookupCounter(before, name, label, value)
		return v
	}

	assert.Equal(t, lookupBefore("votes_total", "outcome", OutcomeAccepted)+1,
		counterValue(t, after, "votes_total", "outcome", OutcomeAccepted))
	assert.Equal(t, lookupBefore("event_sync_total", "outcome", OutcomeDuplicate)+1,
		counterValue(t, after, "event_sync_total", "outcome", OutcomeDuplicate))
	assert.GreaterOrEqual(t, counterValue(t, after, "store_transient_failures_total", "op", "insert_vote"), 1.0)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	RateLimited.Inc()

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "rate_limited_requests_total"))
}
