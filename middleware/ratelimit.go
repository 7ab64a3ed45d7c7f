// middleware/ratelimit.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RegistrationLimiter caps how fast signups are accepted. One global
// bucket is enough: registration is rare and the limiter exists to slow
// down scripted account farming, not to be fair per client.
func RegistrationLimiter(rps rate.Limit, burst int) fiber.Handler {
	limiter := rate.NewLimiter(rps, burst)
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			log.Printf("⛔ [RATELIMIT] registration from %s rejected", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many registrations, try again later"})
		}
		return c.Next()
	}
}
