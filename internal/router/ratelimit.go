package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
)

// RateLimitAuth limits unauthenticated auth endpoints per client IP.
func RateLimitAuth(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: limitReached,
	})
}

// RateLimitWrite limits write endpoints per authenticated user, falling
// back to the client IP before authentication runs.
func RateLimitWrite(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
				return uid
			}
			return c.IP()
		},
		LimitReached: limitReached,
	})
}

func limitReached(c *fiber.Ctx) error {
	return envelope.Error(c, fiber.StatusTooManyRequests, "Too many requests, please try again later")
}
