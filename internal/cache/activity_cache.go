package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"fittrack/internal/model"
)

// ActivityCache keeps a short-lived copy of each user's activity list in
// Redis. A dirty marker set around writes keeps a concurrent reader from
// refilling the cache with a list that is about to be stale.
type ActivityCache struct {
	client         *redisv9.Client
	listTTL        time.Duration
	dirtyMarkerTTL time.Duration
}

func NewActivityCache(client *redisv9.Client, listTTL, dirtyMarkerTTL time.Duration) *ActivityCache {
	if listTTL <= 0 {
		listTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &ActivityCache{
		client:         client,
		listTTL:        listTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *ActivityCache) GetList(ctx context.Context, userID uint) ([]model.Activity, bool, error) {
	raw, err := c.client.Get(ctx, c.listKey(userID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get activity list failed: %w", err)
	}

	var activities []model.Activity
	if err := json.Unmarshal([]byte(raw), &activities); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached activity list failed: %w", err)
	}
	return activities, true, nil
}

func (c *ActivityCache) SetList(ctx context.Context, userID uint, activities []model.Activity) error {
	payload, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("marshal activity list failed: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(userID), payload, c.listTTL).Err(); err != nil {
		return fmt.Errorf("redis set activity list failed: %w", err)
	}
	return nil
}

func (c *ActivityCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.listKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete activity list failed: %w", err)
	}
	return nil
}

func (c *ActivityCache) MarkDirty(ctx context.Context, userID uint) error {
	if err := c.client.Set(ctx, c.dirtyKey(userID), "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *ActivityCache) IsDirty(ctx context.Context, userID uint) (bool, error) {
	exists, err := c.client.Exists(ctx, c.dirtyKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *ActivityCache) listKey(userID uint) string {
	return fmt.Sprintf("activity:list:%d", userID)
}

func (c *ActivityCache) dirtyKey(userID uint) string {
	return fmt.Sprintf("activity:list:dirty:%d", userID)
}
