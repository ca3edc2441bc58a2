// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/danielhkuo/quickly-vote/identity"
	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/models"
)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per client in fixed windows. At most capacity
// clients are tracked; the least recently seen client is forgotten first,
// which only ever resets that client's window early.
type RateLimiter struct {
	mu         sync.Mutex
	clients    *lru.Cache
	max        int
	window     time.Duration
	trustProxy bool
	now        func() time.Time
}

// NewRateLimiter allows max requests per client per windowLen. Clients are
// keyed by RemoteAddr unless trustProxy is set.
func NewRateLimiter(max int, windowLen time.Duration, capacity int, trustProxy bool) (*RateLimiter, error) {
	if max < 1 || windowLen <= 0 {
		return nil, fmt.Errorf("invalid rate limit %d per %s", max, windowLen)
	}

	cache, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit cache: %w", err)
	}

	return &RateLimiter{
		clients:    cache,
		max:        max,
		window:     windowLen,
		trustProxy: trustProxy,
		now:        time.Now,
	}, nil
}

// Allow counts one request for key and reports whether it is within the
// limit, how many requests remain and when the window resets.
func (l *RateLimiter) Allow(key string) (bool, int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	var w *window
	if v, ok := l.clients.Get(key); ok {
		w = v.(*window)
	}
	if w == nil || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.window)}
		l.clients.Add(key, w)
	}

	w.count++
	remaining := l.max - w.count
	if remaining < 0 {
		remaining = 0
	}

	return w.count <= l.max, remaining, w.resetAt
}

// Middleware limits requests under /api and passes everything else through.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api") {
			next.ServeHTTP(w, r)
			return
		}

		key := identity.ClientIP(r, l.trustProxy)
		if key == "" {
			key = "anonymous"
		}

		allowed, remaining, resetAt := l.Allow(key)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.UnixMilli(), 10))

		if !allowed {
			metrics.RateLimited.Inc()
			JSONResponse(w, http.StatusTooManyRequests, models.ErrorResponse{
				Success: false,
				Error:   http.StatusText(http.StatusTooManyRequests),
				Message: "Too many requests. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
