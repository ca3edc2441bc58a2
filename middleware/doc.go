// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs

WithRequestID wraps the whole mux. It reuses an incoming X-Request-ID or
generates a UUID, echoes it on the response and stores it in the context:

	handler := middleware.WithRequestID(mux)
	id := middleware.RequestID(r.Context())

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Logs request start and completion (status, duration_ms) with the request ID.

# CORS Middleware

Enable cross-origin requests for the configured frontends:

	handler := middleware.CORS(cfg.CORSOrigins)(mux)

Preflight requests are answered with 204. Origins outside the list get no
CORS headers. Retry-After and the rate limit headers are exposed to browsers.

# Rate Limiting

RateLimiter counts requests per client IP in fixed windows and answers 429
once the limit is reached. Only paths under /api are counted. The client IP
comes from forwarding headers only when the last argument trusts the proxy:

	limiter, err := middleware.NewRateLimiter(100, 15*time.Minute, 10000, false)
	handler := limiter.Middleware(mux)

Every limited response carries X-RateLimit-Limit, X-RateLimit-Remaining and
X-RateLimit-Reset (unix milliseconds).

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.TransientResponse(w, 50*time.Second)

TransientResponse sets Retry-After and returns 503 with
error_type TRANSIENT_FAILURE.

Parse JSON request bodies (capped at 64 KiB):

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
