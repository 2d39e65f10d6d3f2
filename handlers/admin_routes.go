// handlers/admin_routes.go
package handlers

import (
	"wastewise-backend/middleware"
	"wastewise-backend/models"
	"wastewise-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, admin *services.AdminService, jwtSecret []byte) {
	group := app.Group("/api/admin", middleware.AuthRequired(jwtSecret, models.RoleAdmin))

	group.Get("/users", admin.ListUsers)
	group.Patch("/users/:id/suspend", admin.SuspendUser)
	group.Patch("/users/:id/ban", admin.BanUser)
	group.Patch("/users/:id/activate", admin.ActivateUser)
	group.Delete("/users/:id", admin.DeleteUser)
}
