package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// SnapshotCache stores whole-dataset snapshots keyed by source
type SnapshotCache interface {
	Get(ctx context.Context, source string) (*models.Dataset, bool, error)
	Set(ctx context.Context, ds *models.Dataset) error
	Delete(ctx context.Context, source string) error
}

// SnapshotCacheStats tracks cache performance
type SnapshotCacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	mu     sync.RWMutex
}

// snapshotEntry is the JSON document stored in Redis
type snapshotEntry struct {
	Dataset  *models.Dataset `json:"dataset"`
	CachedAt time.Time       `json:"cached_at"`
}

// RedisSnapshotCache keeps the loaded price table in Redis so restarts skip the slow load
type RedisSnapshotCache struct {
	redis  *redis.Client
	ttl    time.Duration
	stats  *SnapshotCacheStats
	prefix string
}

// NewRedisSnapshotCache creates a Redis-backed snapshot cache. A ttl of 0 keeps snapshots until invalidated.
func NewRedisSnapshotCache(redisClient *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{
		redis:  redisClient,
		ttl:    ttl,
		stats:  &SnapshotCacheStats{},
		prefix: "stockpulse:dataset:",
	}
}

// Key returns the Redis key for a source
func (c *RedisSnapshotCache) Key(source string) string {
	return c.prefix + source
}

// Get returns the cached snapshot for source. A missing key is a miss, not an error.
func (c *RedisSnapshotCache) Get(ctx context.Context, source string) (*models.Dataset, bool, error) {
	data, err := c.redis.Get(ctx, c.Key(source)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.recordMiss()
		return nil, false, nil
	}
	if err != nil {
		c.recordMiss()
		return nil, false, fmt.Errorf("failed to read snapshot for %s: %w", source, err)
	}

	var entry snapshotEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Dataset == nil {
		c.recordMiss()
		if err == nil {
			err = errors.New("empty snapshot")
		}
		return nil, false, fmt.Errorf("failed to decode snapshot for %s: %w", source, err)
	}

	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
	return entry.Dataset, true, nil
}

// Set stores ds under its own source
func (c *RedisSnapshotCache) Set(ctx context.Context, ds *models.Dataset) error {
	if ds == nil {
		return errors.New("nil dataset")
	}

	data, err := json.Marshal(snapshotEntry{Dataset: ds, CachedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := c.redis.Set(ctx, c.Key(ds.Source), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot for %s: %w", ds.Source, err)
	}

	c.stats.mu.Lock()
	c.stats.Sets++
	c.stats.mu.Unlock()
	return nil
}

// Delete removes the snapshot for source
func (c *RedisSnapshotCache) Delete(ctx context.Context, source string) error {
	return c.redis.Del(ctx, c.Key(source)).Err()
}

// GetStats returns a copy of the cache counters
func (c *RedisSnapshotCache) GetStats() SnapshotCacheStats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()
	return SnapshotCacheStats{Hits: c.stats.Hits, Misses: c.stats.Misses, Sets: c.stats.Sets}
}

func (c *RedisSnapshotCache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}
