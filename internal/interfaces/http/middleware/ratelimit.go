package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/infrastructure/ratelimit"
	"crmdesk/internal/shared/constants"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/utils"
)

// RateLimit enforces a per-client-IP fixed window through limiter. When the
// limiter backend fails the request is let through.
func RateLimit(limiter ratelimit.Limiter, scope string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "scope", scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			if retryAfter > 0 {
				c.Header(constants.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			}
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
