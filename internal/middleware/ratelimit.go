package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed-window per-IP limiter backed by redis, used on the
// public RSVP and guest-upload endpoints. When redis is unreachable the
// request is let through; the limiter protects against abuse, it is not a
// correctness gate.
func RateLimit(rdb redis.Cmdable, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || limit <= 0 {
				return next(c)
			}

			key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.RealIP())
			ctx := c.Request().Context()

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				rdb.Expire(ctx, key, window)
			}
			if count > int64(limit) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}

			return next(c)
		}
	}
}
