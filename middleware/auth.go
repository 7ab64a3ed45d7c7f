// middleware/auth.go
package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"contest-platform/models"
	"contest-platform/services"
	"contest-platform/store"
)

// SessionMiddleware validates the bearer token against the identity
// provider, loads the caller's profile and attaches a Session to the
// request. Everything downstream reads the session, never the token.
func SessionMiddleware(identity services.IdentityProvider, st store.Interface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		uid, err := identity.ValidateToken(c.Context(), token)
		if err != nil {
			if errors.Is(err, models.ErrNotAuthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
			}
			log.Printf("❌ [AUTH] token validation failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "authentication temporarily unavailable"})
		}

		user, err := st.GetUser(c.Context(), uid)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				// Valid token but no profile document. Happens for orphaned
				// accounts a failed registration cleanup left behind.
				log.Printf("⚠️ [AUTH] identity %s has no profile", uid)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no profile for this account"})
			}
			log.Printf("❌ [AUTH] profile lookup for %s failed: %v", uid, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "authentication temporarily unavailable"})
		}

		c.Locals("session", &models.Session{
			UID:   user.UID,
			Name:  user.Name,
			Roles: user.Roles,
		})
		return c.Next()
	}
}

// RequireRole guards admin routes; it expects SessionMiddleware to have
// run first.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := c.Locals("session").(*models.Session)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		if !session.HasRole(role) {
			log.Printf("⛔ [AUTH] %s denied %s %s (needs %s)", session.UID, c.Method(), c.Path(), role)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient role"})
		}
		return c.Next()
	}
}
