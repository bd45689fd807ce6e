package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
)

// GridCache keeps computed layouts in Redis. A grid is derived data, so a
// miss or a Redis failure only costs a recompute.
type GridCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGridCache returns nil when client is nil; every method on a nil
// *GridCache is a no-op.
func NewGridCache(client *redis.Client, ttl time.Duration) *GridCache {
	if client == nil {
		return nil
	}
	return &GridCache{client: client, ttl: ttl}
}

// GridKey identifies one layout request within a branch.
type GridKey struct {
	BranchID uint
	Rows     schedule.RowKind
	View     schedule.ViewType
	Interval schedule.Interval
	Date     string
}

func (k GridKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%d:%s", branchPrefix(k.BranchID), k.Rows, k.View, k.Interval, k.Date)
}

func branchPrefix(branchID uint) string {
	return fmt.Sprintf("grid:%d", branchID)
}

func (c *GridCache) Get(ctx context.Context, key GridKey) (*schedule.Grid, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("grid cache get failed", "key", key.String(), "err", err)
		}
		return nil, false
	}

	var grid schedule.Grid
	if err := json.Unmarshal(raw, &grid); err != nil {
		logger.Warn("grid cache entry unreadable", "key", key.String(), "err", err)
		return nil, false
	}
	return &grid, true
}

func (c *GridCache) Set(ctx context.Context, key GridKey, grid schedule.Grid) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		logger.Warn("grid cache encode failed", "key", key.String(), "err", err)
		return
	}
	if err := c.client.Set(ctx, key.String(), raw, c.ttl).Err(); err != nil {
		logger.Warn("grid cache set failed", "key", key.String(), "err", err)
	}
}

// InvalidateBranch drops every cached layout of a branch. Bookings move
// between rows and days, so finer invalidation would miss entries.
func (c *GridCache) InvalidateBranch(ctx context.Context, branchID uint) error {
	if c == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, branchPrefix(branchID)+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning grid cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting grid cache: %w", err)
	}
	return nil
}

// NewRedisClient connects to addr; an empty addr disables caching.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}
