package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelagg/pkg/apperr"
)

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(c *gin.Context) string

func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// Middleware rejects requests over the limit with 429.
func Middleware(l *KeyedLimiter, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(key(c)) {
			c.Header("Retry-After", "1")
			apperr.Respond(c, apperr.New(http.StatusTooManyRequests, apperr.ErrorCodeRateLimited, "too many requests", nil))
			return
		}
		c.Next()
	}
}
