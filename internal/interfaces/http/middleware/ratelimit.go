package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kyc-onboard.backend/pkg/logger"
	"kyc-onboard.backend/pkg/redis"
)

// RateLimitMiddleware applies a Redis-backed fixed window per client IP
// and route. When no Redis client is configured the limiter passes every
// request through, matching deployments that run without Redis.
func RateLimitMiddleware(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !redis.Available() || requests <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		count, err := redis.IncrWindow(c.Request.Context(), key, window)
		if err != nil {
			// limiter backend errors do not block the request
			logger.Warn(c.Request.Context(), "rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(requests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Rate limit exceeded. Try again later.",
			})
			return
		}

		c.Next()
	}
}
