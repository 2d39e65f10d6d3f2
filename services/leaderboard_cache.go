package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "wastewise:leaderboard"

// LeaderboardCache mirrors ranking point totals into a redis sorted set so
// leaderboard reads don't hit the database. It is a cache, never the source
// of truth: writes are best-effort and the poller rebuilds it from the
// rankings table.
type LeaderboardCache struct {
	rdb *redis.Client
}

func NewLeaderboardCache(addr, password string, db int) (*LeaderboardCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return &LeaderboardCache{rdb: rdb}, nil
}

func (c *LeaderboardCache) SetScore(ctx context.Context, userID string, points int64) error {
	return c.rdb.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(points), Member: userID}).Err()
}

func (c *LeaderboardCache) TopUserIDs(ctx context.Context, n int) ([]string, error) {
	return c.rdb.ZRevRange(ctx, leaderboardKey, 0, int64(n-1)).Result()
}

// Rebuild replaces the whole sorted set from the given totals.
func (c *LeaderboardCache) Rebuild(ctx context.Context, scores map[string]int64) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, leaderboardKey)
	for userID, points := range scores {
		pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(points), Member: userID})
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *LeaderboardCache) Close() error {
	return c.rdb.Close()
}
