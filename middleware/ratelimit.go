package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/BerniceZTT/crm_api/cache"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

// RateLimit allows max requests per client IP in each fixed window. The
// limiter fails open when the counter backend errors.
func RateLimit(backend cache.Backend, name string, max int, window time.Duration) gin.HandlerFunc {
	seconds := int64(window / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return func(c *gin.Context) {
		bucket := time.Now().Unix() / seconds
		key := "ratelimit:" + name + ":" + getClientIP(c) + ":" + strconv.FormatInt(bucket, 10)

		ctx, cancel := context.WithTimeout(c.Request.Context(), cacheOpTimeout)
		count, err := backend.Incr(ctx, key, window)
		cancel()
		if err != nil {
			utils.Logger.Warn().Err(err).Str("backend", backend.Name()).Msg("rate limit check failed")
			c.Next()
			return
		}

		remaining := max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(max) {
			c.Header("Retry-After", strconv.FormatInt(seconds, 10))
			utils.HandleError(c, utils.CreateTooManyRequestsError("Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}
