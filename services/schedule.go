package services

import (
	"wastewise-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleService struct {
	DB *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{DB: db}
}

// ListSchedules returns collection schedules, optionally filtered by zone.
func (s *ScheduleService) ListSchedules(c *fiber.Ctx) error {
	db := s.DB.Order("zone ASC, waste_type ASC")
	if zone := c.Query("zone"); zone != "" {
		db = db.Where("zone = ?", zone)
	}

	var schedules []models.Schedule
	if err := db.Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch schedules"})
	}
	return c.JSON(schedules)
}

// CreateSchedule adds a collection cadence for a zone/waste-type (admin).
func (s *ScheduleService) CreateSchedule(c *fiber.Ctx) error {
	var req struct {
		Zone      string `json:"zone"`
		WasteType string `json:"waste_type"`
		Cadence   string `json:"cadence"`
		Color     string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Zone == "" || req.WasteType == "" || req.Cadence == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "zone, waste_type and cadence are required"})
	}

	schedule := models.Schedule{
		ID:        uuid.NewString(),
		Zone:      req.Zone,
		WasteType: req.WasteType,
		Cadence:   req.Cadence,
		Color:     req.Color,
	}
	if err := s.DB.Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create schedule"})
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (s *ScheduleService) DeleteSchedule(c *fiber.Ctx) error {
	res := s.DB.Where("id = ?", c.Params("id")).Delete(&models.Schedule{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete schedule"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "schedule not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
