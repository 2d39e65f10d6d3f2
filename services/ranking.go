package services

import (
	"context"
	"errors"
	"log"
	"strconv"

	"wastewise-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RankingService struct {
	DB    *gorm.DB
	Cache *LeaderboardCache // nil when redis is not configured
}

func NewRankingService(db *gorm.DB, cache *LeaderboardCache) *RankingService {
	return &RankingService{DB: db, Cache: cache}
}

// AwardPoints adds delta to the user's point total and re-derives the tier
// name. The record is created lazily on first award. The increment is a
// single SQL expression, not a read-then-set, so concurrent awards across
// different challenges cannot lose an update. When the new total falls
// outside every tier band the previous rank string is kept.
func (s *RankingService) AwardPoints(userID string, delta int64) (*models.Ranking, error) {
	var updated *models.Ranking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Insert-or-ignore the row, then increment. On a concurrent first
		// award one insert wins, the other is a no-op, and both increments
		// land on the winner's row. A plain Create here would abort the
		// loser's transaction on the unique violation and drop its points.
		seed := models.Ranking{
			ID:     uuid.NewString(),
			UserID: userID,
			Points: 0,
			Rank:   DefaultRank,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Ranking{}).Where("user_id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", delta)).Error; err != nil {
			return err
		}
		var r models.Ranking
		if err := tx.Where("user_id = ?", userID).First(&r).Error; err != nil {
			return err
		}

		if name, ok := RankByPoints(r.Points); ok && name != r.Rank {
			if err := tx.Model(&models.Ranking{}).Where("user_id = ?", userID).
				UpdateColumn("rank", name).Error; err != nil {
				return err
			}
			r.Rank = name
		}

		updated = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.SetScore(context.Background(), userID, updated.Points); err != nil {
			log.Printf("[Leaderboard] cache update failed for %s: %v", userID, err)
		}
	}
	return updated, nil
}

// TopRankings returns the highest point totals, preferring the redis
// leaderboard cache and falling back to the database.
func (s *RankingService) TopRankings(ctx context.Context, limit int) ([]models.Ranking, error) {
	if s.Cache != nil {
		if ids, err := s.Cache.TopUserIDs(ctx, limit); err == nil && len(ids) > 0 {
			var rows []models.Ranking
			if err := s.DB.Where("user_id IN ?", ids).Find(&rows).Error; err == nil {
				byID := make(map[string]models.Ranking, len(rows))
				for _, r := range rows {
					byID[r.UserID] = r
				}
				ordered := make([]models.Ranking, 0, len(ids))
				for _, id := range ids {
					if r, ok := byID[id]; ok {
						ordered = append(ordered, r)
					}
				}
				return ordered, nil
			}
		}
	}

	var rows []models.Ranking
	err := s.DB.Order("points DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// GetMyRanking returns the caller's ranking record. Users who have never
// earned points get a zero/default view without persisting anything.
func (s *RankingService) GetMyRanking(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var r models.Ranking
	err := s.DB.Where("user_id = ?", userID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"user_id": userID, "points": 0, "rank": DefaultRank})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch ranking"})
	}
	return c.JSON(r)
}

// Leaderboard returns the top point holders.
func (s *RankingService) Leaderboard(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := s.TopRankings(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch leaderboard"})
	}
	return c.JSON(rows)
}

// ListRankTiers exposes the static tier table for display-time
// classification (admin views, profile pages).
func (s *RankingService) ListRankTiers(c *fiber.Ctx) error {
	return c.JSON(RankTiers)
}
