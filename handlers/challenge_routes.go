// handlers/challenge_routes.go
package handlers

import (
	"errors"

	"wastewise-backend/middleware"
	"wastewise-backend/models"
	"wastewise-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challenges *services.ChallengeService, submissions *services.SubmissionService, jwtSecret []byte) {
	userGroup := app.Group("/api/user", middleware.AuthRequired(jwtSecret, ""))

	userGroup.Get("/challenges", challenges.ListChallenges)
	userGroup.Get("/challenges/:id", challenges.GetChallenge)

	userGroup.Post("/challenges/:challengeId/submit", func(c *fiber.Ctx) error {
		var body struct {
			ChallengeID string `json:"challengeId" form:"challengeId"`
			Proof       string `json:"proof" form:"proof"`
			Description string `json:"description" form:"description"`
		}
		_ = c.BodyParser(&body) // body is optional when the proof is a file

		challengeID := c.Params("challengeId")
		if challengeID == "" {
			challengeID = body.ChallengeID
		}

		file, err := c.FormFile("image")
		if err != nil {
			file = nil
		}

		result, err := submissions.SubmitEntry(services.SubmitEntryInput{
			Identity: &services.Identity{
				ID:       localString(c, "user_id"),
				Username: localString(c, "username"),
				Email:    localString(c, "email"),
				Role:     localString(c, "role"),
			},
			ChallengeID: challengeID,
			ProofURL:    body.Proof,
			File:        file,
			Description: body.Description,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnauthenticated):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
			case errors.Is(err, services.ErrUserNotFound),
				errors.Is(err, services.ErrChallengeNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
			case errors.Is(err, services.ErrMissingChallengeID),
				errors.Is(err, services.ErrAlreadyCompleted),
				errors.Is(err, services.ErrAlreadySubmitted),
				errors.Is(err, services.ErrMissingProof):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
			case errors.Is(err, services.ErrUploadFailed):
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": services.ErrUploadFailed.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "error submitting entry"})
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":    "submission successful",
			"submission": result.Submission,
			"ranking":    result.Ranking,
		})
	})

	adminGroup := app.Group("/api/admin", middleware.AuthRequired(jwtSecret, models.RoleAdmin))

	adminGroup.Post("/challenges", challenges.CreateChallenge)
	adminGroup.Delete("/challenges/:id", challenges.DeleteChallenge)
}

func localString(c *fiber.Ctx, key string) string {
	v, _ := c.Locals(key).(string)
	return v
}
