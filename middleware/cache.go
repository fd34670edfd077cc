package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/BerniceZTT/crm_api/cache"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

const cacheOpTimeout = 500 * time.Millisecond

// ResponseCache serves GET responses from backend under prefix:<request URI>.
// Only 200 responses are stored. Backend errors bypass the cache.
func ResponseCache(backend cache.Backend, prefix string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := prefix + ":" + c.Request.URL.RequestURI()

		ctx, cancel := context.WithTimeout(c.Request.Context(), cacheOpTimeout)
		cached, ok, err := backend.GetBytes(ctx, key)
		cancel()
		if err != nil {
			utils.Logger.Warn().Err(err).Str("backend", backend.Name()).Str("key", key).Msg("cache read failed")
		}
		if ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		body := captureBody(c)
		c.Next()

		if c.Writer.Status() != http.StatusOK || !strings.HasPrefix(c.Writer.Header().Get("Content-Type"), gin.MIMEJSON) {
			return
		}
		ctx, cancel = context.WithTimeout(context.Background(), cacheOpTimeout)
		defer cancel()
		if err := backend.SetBytes(ctx, key, append([]byte(nil), body.Bytes()...), ttl); err != nil {
			utils.Logger.Warn().Err(err).Str("backend", backend.Name()).Str("key", key).Msg("cache write failed")
		}
	}
}

// InvalidateCache drops every cached response under prefixes after a
// successful write.
func InvalidateCache(backend cache.Backend, prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
		defer cancel()
		for _, p := range prefixes {
			if err := backend.DeletePrefix(ctx, p+":"); err != nil {
				utils.Logger.Warn().Err(err).Str("prefix", p).Msg("cache invalidation failed")
			}
		}
	}
}
