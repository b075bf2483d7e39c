package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"adventcal/internal/model"
)

// Entry is one member of a leaderboard ZSET
type Entry struct {
	UserID string
	Score  int
	Rank   int
}

// LeaderboardCache handles Redis ZSET operations for the per-day boards
// and the aggregated total board. Scores are only ever added on a first
// save, so ZIncrBy on the total never double-counts.
type LeaderboardCache interface {
	AddScore(ctx context.Context, day int, gameType model.GameType, userID string, score int) error
	AddToTotal(ctx context.Context, userID string, score int) error
	Top(ctx context.Context, day int, gameType model.GameType, limit int) ([]Entry, error)
	TotalTop(ctx context.Context, limit int) ([]Entry, error)
	Rank(ctx context.Context, day int, gameType model.GameType, userID string) (int64, error)
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) key(day int, gameType model.GameType) string {
	return fmt.Sprintf("lb:day:%d:%s", day, gameType)
}

func (c *leaderboardCache) totalKey() string {
	return "lb:total"
}

func (c *leaderboardCache) AddScore(ctx context.Context, day int, gameType model.GameType, userID string, score int) error {
	return c.client.ZAdd(ctx, c.key(day, gameType), redis.Z{
		Score:  float64(score),
		Member: userID,
	}).Err()
}

func (c *leaderboardCache) AddToTotal(ctx context.Context, userID string, score int) error {
	return c.client.ZIncrBy(ctx, c.totalKey(), float64(score), userID).Err()
}

func (c *leaderboardCache) Top(ctx context.Context, day int, gameType model.GameType, limit int) ([]Entry, error) {
	return c.top(ctx, c.key(day, gameType), limit)
}

func (c *leaderboardCache) TotalTop(ctx context.Context, limit int) ([]Entry, error) {
	return c.top(ctx, c.totalKey(), limit)
}

func (c *leaderboardCache) top(ctx context.Context, key string, limit int) ([]Entry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(results))
	for i, z := range results {
		entries[i] = Entry{
			UserID: z.Member.(string),
			Score:  int(z.Score),
			Rank:   i + 1,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) Rank(ctx context.Context, day int, gameType model.GameType, userID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(day, gameType), userID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
