package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"task_backend/internal/platform/http/response"
)

// Policy describes one limit applied by Middleware.
type Policy struct {
	// Name namespaces the counters so several policies can share a Store.
	Name    string
	Limit   int64
	Window  time.Duration
	Code    string
	Message string
	// SkipSuccessful refunds hits that attached no error and whose response
	// status is below 400.
	SkipSuccessful bool
	// KeyFunc identifies the client. Defaults to the client IP.
	KeyFunc func(c *gin.Context) string
}

// ByClientIP keys requests by remote address.
func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByContextValue keys requests by a string stored in the gin context under
// contextKey, falling back to the client IP when it is absent.
func ByContextValue(contextKey string) func(c *gin.Context) string {
	return func(c *gin.Context) string {
		if v := c.GetString(contextKey); v != "" {
			return v
		}
		return c.ClientIP()
	}
}

// Middleware enforces p using store. Store failures let the request through.
func Middleware(store Store, p Policy) gin.HandlerFunc {
	keyFunc := p.KeyFunc
	if keyFunc == nil {
		keyFunc = ByClientIP
	}
	code := p.Code
	if code == "" {
		code = "RATE_LIMIT_EXCEEDED"
	}
	message := p.Message
	if message == "" {
		message = "Too many requests, please try again later"
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := p.Name + ":" + keyFunc(c)

		count, resetIn, err := store.Increment(ctx, key, p.Window)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err, "policy", p.Name)
			c.Next()
			return
		}

		resetSeconds := strconv.Itoa(int(math.Ceil(resetIn.Seconds())))
		c.Header("RateLimit-Limit", strconv.FormatInt(p.Limit, 10))
		c.Header("RateLimit-Remaining", strconv.FormatInt(max(p.Limit-count, 0), 10))
		c.Header("RateLimit-Reset", resetSeconds)

		if count > p.Limit {
			c.Header("Retry-After", resetSeconds)
			slog.Warn("rate limit exceeded", "policy", p.Name, "remote_addr", c.ClientIP())
			response.Abort(c, http.StatusTooManyRequests, code, message)
			return
		}

		c.Next()

		// エラーはc.Errorで積まれ、ステータスは外側のErrorHandlerが書き込む
		if p.SkipSuccessful && len(c.Errors) == 0 && c.Writer.Status() < http.StatusBadRequest {
			if err := store.Decrement(ctx, key); err != nil {
				slog.Warn("failed to refund rate limit hit", "error", err, "policy", p.Name)
			}
		}
	}
}
