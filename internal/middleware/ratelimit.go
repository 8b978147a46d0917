package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit allows max attempts per window per client IP, counted in
// Redis so the limit holds across instances. With no Redis configured the
// limiter is a pass-through; a Redis outage fails open rather than locking
// everyone out.
func LoginRateLimit(rdb *redis.Client, max int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}

		key := "ratelimit:login:" + c.IP()
		count, err := rdb.Incr(c.UserContext(), key).Result()
		if err != nil {
			slog.Error("login rate limiter unavailable", "error", err)
			return c.Next()
		}
		if count == 1 {
			rdb.Expire(c.UserContext(), key, window)
		}
		if count > max {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Too many login attempts, please try again later",
			})
		}
		return c.Next()
	}
}
