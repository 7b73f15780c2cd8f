// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the lexical client.
package httputil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay is the first backoff on HTTP 429. Tests override this to
// avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

// RetryMaxDelay caps a single backoff, including one requested by Retry-After.
var RetryMaxDelay = 10 * time.Second

// DoWithRetry executes req and retries on HTTP 429 (Too Many Requests).
// The wait doubles each attempt starting at RetryBaseDelay, unless the
// response carries a Retry-After header in seconds, which takes precedence.
// Waits are capped at RetryMaxDelay.
//
// maxRetries <= 0 sends the request once and returns whatever the service
// answered, 429 included. Other statuses are returned to the caller untouched. After exhausting retries the last 429 response is
// returned so the caller can inspect it. A cancelled context during a wait
// returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, logger *slog.Logger) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logger.Warn("rate limited by lexical service",
			slog.String("url", req.URL.Redacted()),
			slog.Duration("wait", wait),
			slog.Int("attempt", attempt+1),
			slog.Int("max_retries", maxRetries))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// backoff returns the wait before retry number attempt+1.
func backoff(attempt int, retryAfter string) time.Duration {
	wait := RetryBaseDelay << attempt
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		wait = time.Duration(secs) * time.Second
	}
	if wait > RetryMaxDelay || wait < 0 {
		wait = RetryMaxDelay
	}
	return wait
}
