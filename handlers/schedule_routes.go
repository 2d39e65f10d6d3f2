// handlers/schedule_routes.go
package handlers

import (
	"wastewise-backend/middleware"
	"wastewise-backend/models"
	"wastewise-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupScheduleRoutes(app *fiber.App, schedules *services.ScheduleService, jwtSecret []byte) {
	userGroup := app.Group("/api/user", middleware.AuthRequired(jwtSecret, ""))

	userGroup.Get("/schedules", schedules.ListSchedules)

	adminGroup := app.Group("/api/admin", middleware.AuthRequired(jwtSecret, models.RoleAdmin))

	adminGroup.Get("/schedules", schedules.ListSchedules)
	adminGroup.Post("/schedules", schedules.CreateSchedule)
	adminGroup.Delete("/schedules/:id", schedules.DeleteSchedule)
}
