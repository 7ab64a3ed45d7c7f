// handlers/projects.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"contest-platform/middleware"
	"contest-platform/models"
	"contest-platform/services"
	"contest-platform/store"
)

func SetupProjectRoutes(app *fiber.App, projectService *services.ProjectService, identity services.IdentityProvider, st store.Interface) {
	session := middleware.SessionMiddleware(identity, st)

	// 🔓 Public routes
	app.Get("/projects", projectService.GetAllProjects)
	app.Get("/projects/:name", projectService.GetProjectDetails)

	// 🔐 Secured routes
	app.Post("/projects", session, projectService.CreateProjectHandler)

	// 🛡️ Admin routes
	app.Patch("/admin/projects/:name/phase",
		session, middleware.RequireRole(models.RoleAdmin),
		projectService.UpdateProjectPhase)
}
