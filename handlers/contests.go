// handlers/contests.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"contest-platform/middleware"
	"contest-platform/models"
	"contest-platform/services"
	"contest-platform/store"
)

func SetupContestRoutes(app *fiber.App, contestService *services.ContestService, identity services.IdentityProvider, st store.Interface) {
	session := middleware.SessionMiddleware(identity, st)

	// 🔓 Public routes
	app.Get("/contests", contestService.GetAllContests)

	// 🛡️ Admin routes
	app.Post("/admin/contests",
		session, middleware.RequireRole(models.RoleAdmin),
		contestService.CreateContestHandler)
	app.Patch("/admin/contests/:id/phase",
		session, middleware.RequireRole(models.RoleAdmin),
		contestService.UpdateContestPhase)
}
