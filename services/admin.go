package services

import (
	"errors"

	"wastewise-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminService covers user moderation: listing, suspending, banning,
// reactivating and removing accounts.
type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

func (s *AdminService) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch users"})
	}
	return c.JSON(users)
}

func (s *AdminService) setUserStatus(c *fiber.Ctx, status, verb, past string) error {
	var user models.User
	err := s.DB.Where("id = ?", c.Params("id")).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch user"})
	}

	user.Status = status
	if err := s.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to " + verb + " user"})
	}
	return c.JSON(fiber.Map{"message": "user " + past + " successfully", "user": user})
}

func (s *AdminService) SuspendUser(c *fiber.Ctx) error {
	return s.setUserStatus(c, models.UserStatusSuspended, "suspend", "suspended")
}

func (s *AdminService) BanUser(c *fiber.Ctx) error {
	return s.setUserStatus(c, models.UserStatusBanned, "ban", "banned")
}

func (s *AdminService) ActivateUser(c *fiber.Ctx) error {
	return s.setUserStatus(c, models.UserStatusActive, "activate", "activated")
}

func (s *AdminService) DeleteUser(c *fiber.Ctx) error {
	res := s.DB.Where("id = ?", c.Params("id")).Delete(&models.User{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete user"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(fiber.Map{"message": "user deleted successfully"})
}
