package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"time"

	redisStore "campus-access-gateway/internal/adapter/storage/redis"
	"campus-access-gateway/pkg/apperror"
	"campus-access-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// TapRateLimiter creates the rate-limiting middleware for the tap endpoint.
// The counter is keyed by card UID so one chattering reader cannot lock out
// every terminal, with the client IP as the key when no card can be read
// from the body. Redis failures degrade open: a broken limiter must not
// close the campus gates.
func TapRateLimiter(store *redisStore.RateLimitStore, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := extractCardUID(c)
		if key == "" {
			key = c.ClientIP()
		}

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractCardUID peeks the card UID out of the request body, restoring the
// body for the handler's own binding.
func extractCardUID(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var probe struct {
		CardUID string `json:"card_uid"`
	}
	if err := json.Unmarshal(bodyBytes, &probe); err != nil {
		return ""
	}
	return probe.CardUID
}
