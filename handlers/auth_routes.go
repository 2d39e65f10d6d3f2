// handlers/auth_routes.go
package handlers

import (
	"wastewise-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, auth *services.AuthService) {
	group := app.Group("/api/auth")

	group.Post("/signup", auth.Signup)
	group.Post("/login", auth.Login)
}
