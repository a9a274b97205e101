package middleware

import (
	"errors"
	"math"
	"strconv"

	"anoa.com/storerating/pkg/ratelimiter"
	"anoa.com/storerating/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimit throttles requests per client ip. When redis is unreachable the
// request goes through and the failure is logged.
func RateLimit(limiter *ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err == nil {
			c.Next()
			return
		}

		var limitErr *ratelimiter.RateLimitError
		if errors.As(err, &limitErr) {
			seconds := int(math.Ceil(limitErr.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			response.Error(c, err)
			return
		}

		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("rate limiter unavailable")
		c.Next()
	}
}
