package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fedorukko2007-source/todo-app/internal/app/models"
)

// TaskCache holds a short-lived copy of the full task list so repeated GETs
// skip the store. Mutations invalidate it. Cache failures are never fatal;
// the service ignores them.
type TaskCache interface {
	GetList(ctx context.Context) ([]models.Task, error)
	SetList(ctx context.Context, tasks []models.Task, ttl time.Duration) error
	InvalidateList(ctx context.Context) error
}

const taskListKey = "tasks:list"

type RedisTaskCache struct {
	rdb *redis.Client
}

func NewRedisTaskCache(rdb *redis.Client) *RedisTaskCache {
	return &RedisTaskCache{rdb: rdb}
}

func (c *RedisTaskCache) GetList(ctx context.Context) ([]models.Task, error) {
	val, err := c.rdb.Get(ctx, taskListKey).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *RedisTaskCache) SetList(ctx context.Context, tasks []models.Task, ttl time.Duration) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, taskListKey, data, ttl).Err()
}

func (c *RedisTaskCache) InvalidateList(ctx context.Context) error {
	return c.rdb.Del(ctx, taskListKey).Err()
}

// NoopCache is used when no redis address is configured.
type NoopCache struct{}

func (NoopCache) GetList(ctx context.Context) ([]models.Task, error) { return nil, nil }

func (NoopCache) SetList(ctx context.Context, tasks []models.Task, ttl time.Duration) error {
	return nil
}

func (NoopCache) InvalidateList(ctx context.Context) error { return nil }

var (
	_ TaskCache = (*RedisTaskCache)(nil)
	_ TaskCache = NoopCache{}
)
