package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSnapshotCache_RoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisSnapshotCache(client, time.Hour)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "csv")
	require.NoError(t, err)
	assert.False(t, ok)

	ds := sampleDataset("csv")
	require.NoError(t, cache.Set(ctx, ds))
	assert.True(t, mr.Exists("stockpulse:dataset:csv"))
	assert.Equal(t, time.Hour, mr.TTL("stockpulse:dataset:csv"))

	got, ok, err := cache.Get(ctx, "csv")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ds.Rows, got.Rows)
	assert.Equal(t, []string{"AXISBANK.NS", "ITC.NS"}, got.Symbols())

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestRedisSnapshotCache_Expiry(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisSnapshotCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleDataset("csv")))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "csv")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSnapshotCache_CorruptEntry(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisSnapshotCache(client, 0)

	require.NoError(t, mr.Set("stockpulse:dataset:csv", "{not json"))

	_, ok, err := cache.Get(context.Background(), "csv")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisSnapshotCache_Delete(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisSnapshotCache(client, 0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleDataset("postgres")))
	require.NoError(t, cache.Delete(ctx, "postgres"))
	assert.False(t, mr.Exists("stockpulse:dataset:postgres"))
	assert.Error(t, cache.Set(ctx, nil))
}
