// handlers/report_routes.go
package handlers

import (
	"wastewise-backend/middleware"
	"wastewise-backend/models"
	"wastewise-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, reports *services.ReportService, jwtSecret []byte) {
	userGroup := app.Group("/api/user", middleware.AuthRequired(jwtSecret, ""))

	userGroup.Post("/report", reports.CreateReport)
	userGroup.Get("/reports", reports.MyReports)

	adminGroup := app.Group("/api/admin", middleware.AuthRequired(jwtSecret, models.RoleAdmin))

	adminGroup.Get("/reports", reports.AllReports)
	// registered before /reports/:id so "download" isn't captured as an id
	adminGroup.Get("/reports/download/pdf", reports.DownloadPDF)
	adminGroup.Get("/reports/:id", reports.GetReport)
	adminGroup.Patch("/reports/:id/manage", reports.ResolveReport)
}
