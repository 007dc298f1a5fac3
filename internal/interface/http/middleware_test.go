package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/config"
)

func TestBucketTableBurstAndRefill(t *testing.T) {
	table := newBucketTable(1, 2)

	require.True(t, table.take("10.0.0.1"))
	require.True(t, table.take("10.0.0.1"))
	require.False(t, table.take("10.0.0.1"))

	// A different client draws from its own bucket.
	require.True(t, table.take("10.0.0.2"))

	// Rewind the bucket clock to simulate one second of refill.
	table.mu.Lock()
	table.buckets["10.0.0.1"].last = time.Now().Add(-time.Second)
	table.mu.Unlock()
	require.True(t, table.take("10.0.0.1"))
}

func TestBucketTableSweepsIdleClients(t *testing.T) {
	table := newBucketTable(1, 1)
	require.True(t, table.take("10.0.0.1"))

	table.mu.Lock()
	table.buckets["10.0.0.1"].last = time.Now().Add(-2 * bucketIdleTTL)
	table.lastSweep = time.Now().Add(-2 * bucketIdleTTL)
	table.mu.Unlock()

	require.True(t, table.take("10.0.0.2"))

	table.mu.Lock()
	_, kept := table.buckets["10.0.0.1"]
	table.mu.Unlock()
	require.False(t, kept)
}

func TestWithRetryReplaysTransientFailures(t *testing.T) {
	var attempts int
	var bodies []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond}
	wrapped := withRetry(next, cfg, newTestLogger())

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.com"}`))
	wrapped.ServeHTTP(recorder, req)

	require.Equal(t, 3, attempts)
	require.Equal(t, http.StatusCreated, recorder.Code)
	require.JSONEq(t, `{"ok":true}`, recorder.Body.String())
	// Every attempt sees the same replayed body.
	require.Equal(t, []string{`{"email":"a@b.com"}`, `{"email":"a@b.com"}`, `{"email":"a@b.com"}`}, bodies)
}

func TestWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts int
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 2, BaseBackoff: time.Millisecond}
	wrapped := withRetry(next, cfg, newTestLogger())

	recorder := httptest.NewRecorder()
	wrapped.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{}`)))

	require.Equal(t, 2, attempts)
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestWithRetrySkipsExcludedAndNonPost(t *testing.T) {
	var attempts int
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	})
	cfg := config.RetryConfig{
		Enabled:     true,
		MaxAttempts: 3,
		BaseBackoff: time.Millisecond,
		Exclude:     []string{"/api/v1/plans"},
	}
	wrapped := withRetry(next, cfg, newTestLogger())

	recorder := httptest.NewRecorder()
	wrapped.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(`{}`)))
	require.Equal(t, 1, attempts)

	attempts = 0
	recorder = httptest.NewRecorder()
	wrapped.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/plans/latest", nil))
	require.Equal(t, 1, attempts)
}
