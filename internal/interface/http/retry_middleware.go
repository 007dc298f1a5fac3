package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"log/slog"

	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/config"
)

// maxReplayBody bounds how much of a request body is buffered for replay.
const maxReplayBody = 256 << 10

var errReplayBodyTooLarge = errors.New("request body too large to retry")

// withRetry wraps the router so transient 5xx responses to POSTs are retried
// with exponential backoff. Plan generation is excluded through config since
// replaying a model call is neither cheap nor idempotent.
func withRetry(next http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return next
	}
	rt := &retryTransport{
		next:     next,
		attempts: cfg.MaxAttempts,
		backoff:  cfg.BaseBackoff,
		logger:   logger,
		skip:     make(map[string]struct{}, len(cfg.Exclude)),
	}
	for _, path := range cfg.Exclude {
		rt.skip[path] = struct{}{}
	}
	return rt
}

type retryTransport struct {
	next     http.Handler
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
	skip     map[string]struct{}
}

func (rt *retryTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, excluded := rt.skip[r.URL.Path]; excluded || r.Method != http.MethodPost {
		rt.next.ServeHTTP(w, r)
		return
	}

	body, err := bufferBody(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errReplayBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, err.Error(), status)
		return
	}

	delay := rt.backoff
	for attempt := 1; ; attempt++ {
		buffered := newBufferedResponse()
		replay := r.Clone(r.Context())
		replay.Body = io.NopCloser(bytes.NewReader(body))
		replay.ContentLength = int64(len(body))

		rt.next.ServeHTTP(buffered, replay)
		if buffered.status < http.StatusInternalServerError || attempt == rt.attempts {
			buffered.flushTo(w)
			return
		}

		rt.logger.Warn("transient failure, retrying request",
			"path", r.URL.Path, "status", buffered.status, "attempt", attempt)
		if delay > 0 {
			time.Sleep(delay)
		}
		delay *= 2
	}
}

// bufferBody drains the request body so it can be replayed across attempts.
func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxReplayBody+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxReplayBody {
		return nil, errReplayBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds a full response until the attempt is final. A zero
// status means the handler never called WriteHeader.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for key := range dst {
		dst.Del(key)
	}
	for key, values := range b.header {
		dst[key] = append([]string(nil), values...)
	}
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
