// contest-platform/services/http.go
package services

import (
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"contest-platform/models"
)

// httpError translates a service failure into a category-level JSON
// response. Raw backend text stays in the logs, never in the response.
func httpError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, models.ErrValidationFailed):
		status, message = fiber.StatusBadRequest, "invalid input"
	case errors.Is(err, models.ErrNotAuthenticated):
		status, message = fiber.StatusUnauthorized, "authentication required"
	case errors.Is(err, models.ErrNotFound):
		status, message = fiber.StatusNotFound, "not found"
	case errors.Is(err, models.ErrEmailInUse):
		status, message = fiber.StatusConflict, "email already in use"
	case errors.Is(err, models.ErrWeakCredential):
		status, message = fiber.StatusUnprocessableEntity, "password does not meet the minimum requirements"
	case errors.Is(err, models.ErrAllocationExhausted):
		status, message = fiber.StatusConflict, "could not find a free name, try a different one"
	case errors.Is(err, models.ErrCompensationFailed):
		status, message = fiber.StatusInternalServerError, "registration failed and cleanup did not complete, please contact an operator"
	case errors.Is(err, models.ErrProfileWriteFailed):
		status, message = fiber.StatusInternalServerError, "failed to create your profile, please try again"
	case errors.Is(err, models.ErrDecodeFailed):
		status, message = fiber.StatusInternalServerError, "stored data could not be read"
	case errors.Is(err, models.ErrStorageUnavailable):
		status, message = fiber.StatusServiceUnavailable, "storage temporarily unavailable, please try again"
	}

	if status >= 500 {
		log.Printf("❌ [HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// sessionFromCtx pulls the session the auth middleware attached, or nil
// on unauthenticated routes.
func sessionFromCtx(c *fiber.Ctx) *models.Session {
	sess, _ := c.Locals("session").(*models.Session)
	return sess
}

// pathParam decodes a route parameter. Display names may carry spaces
// and other escaped characters.
func pathParam(c *fiber.Ctx, key string) (string, error) {
	return url.PathUnescape(c.Params(key))
}
