package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"rides/internal/redis"
)

const (
	idempotencyHeader  = "Idempotency-Key"
	idempotencyLockTTL = 30 * time.Second
)

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key and rejects a duplicate that arrives while the first
// request is still running. A key reused for a different request is
// rejected with 422. Redis failures degrade to normal processing.
func IdempotencyMiddleware(store redis.ResponseStore, locks redis.Locker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only apply to mutating methods.
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		fingerprint, err := requestFingerprint(c)
		if err != nil {
			logger.Warn("Could not read request body", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		ctx := c.Request.Context()

		cached, err := store.GetResponse(ctx, key)
		if err != nil {
			logger.Warn("Idempotency lookup failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if cached != nil {
			replayOrReject(c, cached, fingerprint)
			return
		}

		acquired, err := locks.Acquire(ctx, key, idempotencyLockTTL)
		if err != nil {
			logger.Warn("Idempotency lock failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error_code": "CONFLICT",
				"message":    "a request with this Idempotency-Key is already in progress",
			})
			return
		}

		// Storing and unlocking must outlive a disconnected client.
		bg := context.WithoutCancel(ctx)
		defer func() {
			if err := locks.Release(bg, key); err != nil {
				logger.Warn("Idempotency unlock failed", zap.String("key", key), zap.Error(err))
			}
		}()

		// The first request may have finished between the lookup and the lock.
		cached, err = store.GetResponse(ctx, key)
		if err != nil {
			logger.Warn("Idempotency lookup failed", zap.String("key", key), zap.Error(err))
		}
		if cached != nil {
			replayOrReject(c, cached, fingerprint)
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusInternalServerError {
			return
		}
		resp := &redis.CachedResponse{
			StatusCode:  status,
			Body:        w.body.Bytes(),
			Headers:     extractResponseHeaders(c),
			Fingerprint: fingerprint,
		}
		if err := store.SetResponse(bg, key, resp); err != nil {
			logger.Warn("Idempotency store failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// requestFingerprint hashes method, route and body, leaving the body
// readable for the handler.
func requestFingerprint(c *gin.Context) (string, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	h := xxh3.New()
	_, _ = h.WriteString(c.Request.Method)
	_, _ = h.WriteString(" ")
	_, _ = h.WriteString(c.Request.URL.Path)
	_, _ = h.WriteString("\n")
	_, _ = h.Write(body)
	return strconv.FormatUint(h.Sum64(), 16), nil
}

func replayOrReject(c *gin.Context, cached *redis.CachedResponse, fingerprint string) {
	if cached.Fingerprint != "" && cached.Fingerprint != fingerprint {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error_code": "IDEMPOTENCY_KEY_REUSED",
			"message":    "Idempotency-Key was already used for a different request",
		})
		return
	}
	replay(c, cached)
}

func replay(c *gin.Context, cached *redis.CachedResponse) {
	for k, v := range cached.Headers {
		for _, val := range v {
			c.Header(k, val)
		}
	}
	c.Header("Idempotent-Replayed", "true")
	c.Data(cached.StatusCode, cached.Headers.Get("Content-Type"), cached.Body)
	c.Abort()
}

// extractResponseHeaders extracts headers to cache.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	// Only cache Content-Type header.
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
