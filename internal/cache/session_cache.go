package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"adventcal/internal/model"
)

// SessionCache holds the typed hand-off bundle written when a day is
// selected. One bundle per user; Take reads and deletes it in one step so
// a game can only mount it once.
type SessionCache interface {
	Put(ctx context.Context, userID string, start *model.SessionStart) error
	Take(ctx context.Context, userID string) (*model.SessionStart, error)
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session hand-off cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    2 * time.Hour,
	}
}

func (c *sessionCache) key(userID string) string {
	return "session:" + userID
}

func (c *sessionCache) Put(ctx context.Context, userID string, start *model.SessionStart) error {
	data, err := json.Marshal(start)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

// Take returns the stored bundle and removes it, or (nil, nil) when
// nothing is stored or the payload does not parse.
func (c *sessionCache) Take(ctx context.Context, userID string) (*model.SessionStart, error) {
	data, err := c.client.GetDel(ctx, c.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var start model.SessionStart
	if err := json.Unmarshal([]byte(data), &start); err != nil {
		// malformed payload reads as missing config, not a crash
		return nil, nil
	}
	return &start, nil
}
