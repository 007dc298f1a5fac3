package http

import (
	"math"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/config"
)

// errorHandlingMiddleware turns errors attached to the context into the JSON
// error envelope. Handlers abort with an HTTPError; anything else is masked
// as an internal error.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		logFn := logger.Warn
		if httpErr.Status >= http.StatusInternalServerError {
			logFn = logger.Error
		}
		logFn("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", httpErr.Status,
			"code", httpErr.Code,
			"error", httpErr.Err,
		)

		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}
		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": message,
			},
		})
	}
}

// rateLimitMiddleware applies a per-client token bucket. Every plan request
// holds a model call open, so limits apply across the whole API.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	buckets := newBucketTable(float64(cfg.RequestsPerMinute)/60, float64(cfg.Burst))
	return func(c *gin.Context) {
		client := c.ClientIP()
		if !buckets.take(client) {
			logger.Warn("rate limit exceeded", "client", client, "method", c.Request.Method, "path", c.Request.URL.Path)
			abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
			return
		}
		c.Next()
	}
}

const bucketIdleTTL = 5 * time.Minute

// bucketTable tracks one token bucket per client key.
type bucketTable struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perSecond float64
	burst     float64
	lastSweep time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

func newBucketTable(perSecond, burst float64) *bucketTable {
	return &bucketTable{
		buckets:   make(map[string]*bucket),
		perSecond: perSecond,
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// take consumes one token for key, refilling by elapsed wall time first.
func (t *bucketTable) take(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: t.burst, last: now}
		t.buckets[key] = b
	}

	refill := now.Sub(b.last).Seconds() * t.perSecond
	b.tokens = math.Min(t.burst, b.tokens+refill)
	b.last = now

	if now.Sub(t.lastSweep) > bucketIdleTTL {
		t.sweepLocked(now)
		t.lastSweep = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweepLocked drops buckets idle past the TTL so the table stays bounded.
func (t *bucketTable) sweepLocked(now time.Time) {
	for key, b := range t.buckets {
		if now.Sub(b.last) > bucketIdleTTL {
			delete(t.buckets, key)
		}
	}
}
