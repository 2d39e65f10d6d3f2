package services

import (
	"errors"

	"wastewise-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeService struct {
	DB *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{DB: db}
}

type challengeResponse struct {
	models.Challenge
	Completors []string `json:"completors"`
}

func toChallengeResponse(ch models.Challenge) challengeResponse {
	resp := challengeResponse{Challenge: ch, Completors: ch.CompletorIDs()}
	resp.Challenge.Completors = nil
	return resp
}

// ListChallenges returns all challenges with their completor user ids.
func (s *ChallengeService) ListChallenges(c *fiber.Ctx) error {
	var challenges []models.Challenge
	if err := s.DB.Preload("Completors").Order("created_at DESC").Find(&challenges).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch challenges"})
	}

	resp := make([]challengeResponse, 0, len(challenges))
	for _, ch := range challenges {
		resp = append(resp, toChallengeResponse(ch))
	}
	return c.JSON(resp)
}

func (s *ChallengeService) GetChallenge(c *fiber.Ctx) error {
	var challenge models.Challenge
	err := s.DB.Preload("Completors").Where("id = ?", c.Params("id")).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "challenge not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch challenge"})
	}
	return c.JSON(toChallengeResponse(challenge))
}

// CreateChallenge creates a new challenge (admin only).
func (s *ChallengeService) CreateChallenge(c *fiber.Ctx) error {
	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Instructions string `json:"instructions"`
		Points       int64  `json:"points"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	if req.Points < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "points must not be negative"})
	}

	challenge := models.Challenge{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Slug:         slug.Make(req.Title),
		Description:  req.Description,
		Instructions: req.Instructions,
		Points:       req.Points,
	}
	if err := s.DB.Create(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a challenge with this title already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create challenge"})
	}
	return c.Status(fiber.StatusCreated).JSON(challenge)
}

func (s *ChallengeService) DeleteChallenge(c *fiber.Ctx) error {
	res := s.DB.Where("id = ?", c.Params("id")).Delete(&models.Challenge{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete challenge"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "challenge not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReconcileCompletors inserts completor rows for every submission that is
// missing one. The submission table is the source of truth; the completor
// set is a derived index whose best-effort updates can be lost, so this runs
// periodically to heal the drift. Idempotent.
func (s *ChallengeService) ReconcileCompletors() (int64, error) {
	var missing []models.Submission
	err := s.DB.Model(&models.Submission{}).
		Select("submissions.challenge_id, submissions.user_id").
		Joins("LEFT JOIN challenge_completors cc ON cc.challenge_id = submissions.challenge_id AND cc.user_id = submissions.user_id").
		Where("cc.id IS NULL").
		Find(&missing).Error
	if err != nil {
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}

	rows := make([]models.ChallengeCompletor, 0, len(missing))
	for _, sub := range missing {
		rows = append(rows, models.ChallengeCompletor{
			ID:          uuid.NewString(),
			ChallengeID: sub.ChallengeID,
			UserID:      sub.UserID,
		})
	}
	res := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return res.RowsAffected, res.Error
}
