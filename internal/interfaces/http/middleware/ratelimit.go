package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tempus/internal/infrastructure/ratelimit"
	"tempus/internal/shared/utils"
)

// RateLimitMiddleware throttles code redemption per client IP. Shared Redis
// state keeps the limit correct across multiple engine instances.
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, requestsPerMinute int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		config: ratelimit.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
		},
	}
}

func (m *RateLimitMiddleware) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, err := m.limiter.Allow(c.Request.Context(), key, m.config)
		if err != nil {
			// Redis being down must not block the kiosks.
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
