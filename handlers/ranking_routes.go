// handlers/ranking_routes.go
package handlers

import (
	"wastewise-backend/middleware"
	"wastewise-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRankingRoutes(app *fiber.App, rankings *services.RankingService, jwtSecret []byte) {
	userGroup := app.Group("/api/user", middleware.AuthRequired(jwtSecret, ""))

	userGroup.Get("/ranking", rankings.GetMyRanking)
	userGroup.Get("/leaderboard", rankings.Leaderboard)
	userGroup.Get("/ranks", rankings.ListRankTiers)
}
