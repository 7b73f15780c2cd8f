// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	RetryBaseDelay = 1 * time.Millisecond
}

func rateLimitedServer(t *testing.T, limitFirst int32, calls *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(calls, 1)
		if limitFirst < 0 || n <= limitFirst {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestDoWithRetry_ImmediateSuccess(t *testing.T) {
	var calls int32
	ts := rateLimitedServer(t, 0, &calls)

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 3, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_RetriesThen200(t *testing.T) {
	var calls int32
	ts := rateLimitedServer(t, 2, &calls)

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 3, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_ExhaustsRetries(t *testing.T) {
	var calls int32
	ts := rateLimitedServer(t, -1, &calls)

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 2, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	// 1 initial + 2 retries.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_ZeroRetriesSendsOnce(t *testing.T) {
	for _, maxRetries := range []int{0, -1} {
		var calls int32
		ts := rateLimitedServer(t, 1, &calls)

		req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
		require.NoError(t, err)

		resp, err := DoWithRetry(context.Background(), ts.Client(), req, maxRetries, nil)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	}
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	var calls int32
	ts := rateLimitedServer(t, -1, &calls)

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 3, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDoWithRetry_Non429PassesThrough(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 3, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBackoff(t *testing.T) {
	oldBase, oldMax := RetryBaseDelay, RetryMaxDelay
	RetryBaseDelay, RetryMaxDelay = 100*time.Millisecond, 2*time.Second
	defer func() { RetryBaseDelay, RetryMaxDelay = oldBase, oldMax }()

	tests := []struct {
		name       string
		attempt    int
		retryAfter string
		want       time.Duration
	}{
		{"first attempt", 0, "", 100 * time.Millisecond},
		{"doubles", 2, "", 400 * time.Millisecond},
		{"capped", 10, "", 2 * time.Second},
		{"retry-after wins", 0, "1", time.Second},
		{"retry-after capped", 0, "60", 2 * time.Second},
		{"bad retry-after ignored", 1, "soon", 200 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backoff(tt.attempt, tt.retryAfter))
		})
	}
}
