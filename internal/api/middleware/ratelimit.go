package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LoginLimiter abstracts the rate-limit store (Redis).
type LoginLimiter interface {
	// Allow reports whether another attempt is permitted for key within the
	// current window, and how many seconds remain until the window resets.
	Allow(ctx context.Context, key string) (ok bool, retryAfter int, err error)
}

// RateLimit throttles a route per client IP. Limiter failures are logged and
// the request is let through: losing the throttle is preferable to losing
// logins when Redis is down.
func RateLimit(limiter LoginLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retryAfter, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
