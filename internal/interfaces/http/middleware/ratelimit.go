package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bilig/internal/infrastructure/ratelimit"
	"bilig/internal/shared/logger"
	"bilig/internal/shared/utils"
)

// RateLimit throttles requests per client IP under the given scope.
// A limiter failure lets the request through: losing the throttle is
// better than blocking all traffic when redis is down.
func RateLimit(limiter ratelimit.RateLimiter, scope string, config ratelimit.Config, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key, config)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "scope", scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
