// handlers/users.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"contest-platform/middleware"
	"contest-platform/services"
	"contest-platform/store"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService, registrationService *services.RegistrationService, identity services.IdentityProvider, st store.Interface) {
	session := middleware.SessionMiddleware(identity, st)

	// 🔓 Public routes
	app.Post("/register", middleware.RegistrationLimiter(rate.Limit(1), 5), registrationService.RegisterUser)
	app.Get("/users", userService.GetAllUsers)
	app.Get("/users/search", userService.SearchUsers)

	// 🔐 Secured routes, session attached from the bearer token. These
	// must be registered before /users/:name so "me" is never treated as
	// a display name.
	app.Get("/users/me", session, userService.GetMe)
	app.Patch("/users/me", session, userService.UpdateProfile)
	app.Post("/users/me/avatar", session, userService.UploadAvatar)

	// 🔓 Public profile lookup by display name
	app.Get("/users/:name", userService.GetUserProfile)
}
