package workers

import (
	"context"
	"log"
	"time"

	"wastewise-backend/models"
	"wastewise-backend/services"

	"gorm.io/gorm"
)

// PollLeaderboard periodically rebuilds the redis leaderboard from the
// rankings table. Per-award cache writes are best-effort, so the poller is
// what guarantees the sorted set converges on the database totals.
func PollLeaderboard(ctx context.Context, db *gorm.DB, cache *services.LeaderboardCache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Starting leaderboard sync (every %s)", interval)

	rebuild := func() {
		var rows []models.Ranking
		if err := db.Select("user_id", "points").Find(&rows).Error; err != nil {
			log.Printf("[LeaderboardSync] DB error: %v", err)
			return
		}

		scores := make(map[string]int64, len(rows))
		for _, r := range rows {
			scores[r.UserID] = r.Points
		}

		rebuildCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := cache.Rebuild(rebuildCtx, scores); err != nil {
			log.Printf("[LeaderboardSync] rebuild failed: %v", err)
			return
		}
	}

	rebuild()
	for {
		select {
		case <-ctx.Done():
			log.Println("Leaderboard sync stopped")
			return
		case <-ticker.C:
			rebuild()
		}
	}
}
