package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/allinone/manager/internal/pkg/response"
)

const rateLimitKeys = 4096

// RateLimit rejects a second request for the same client+path inside the
// window. Keys age out of the LRU on their own, so the map stays bounded.
func RateLimit(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	seen := expirable.NewLRU[string, struct{}](rateLimitKeys, nil, window)
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := strings.Join([]string{c.ClientIP(), path}, "|")
		if _, hit := seen.Get(key); hit {
			logutil.GetLogger(c.Request.Context()).Warn("rate limit hit",
				zap.String("ip", c.ClientIP()),
				zap.String("path", path),
			)
			response.Error(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		seen.Add(key, struct{}{})
		c.Next()
	}
}
