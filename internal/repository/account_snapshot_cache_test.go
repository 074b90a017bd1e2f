package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-console/internal/domain"
)

// fakeRedis implements the two commands the cache uses; any other call panics
// through the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func TestSnapshotCacheRoundTrip(t *testing.T) {
	rdb := newFakeRedis()
	cache := NewRedisSnapshotCache(rdb, time.Hour)
	fetched := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	err := cache.Save(context.Background(), domain.AccountSnapshot{
		Accounts:  []domain.Account{{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "a@x.com", IsActive: true}},
		FetchedAt: fetched,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, rdb.ttls[SnapshotKey])

	got, err := cache.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Accounts, 1)
	assert.Equal(t, domain.AccountID("1"), got.Accounts[0].ID)
	assert.True(t, got.FetchedAt.Equal(fetched))
}

func TestSnapshotCacheMiss(t *testing.T) {
	cache := NewRedisSnapshotCache(newFakeRedis(), 0)

	got, err := cache.Load(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotCacheErrors(t *testing.T) {
	rdb := newFakeRedis()
	rdb.values[SnapshotKey] = "not json"
	cache := NewRedisSnapshotCache(rdb, 0)

	_, err := cache.Load(context.Background())
	assert.ErrorContains(t, err, "decode snapshot")

	rdb.getErr = errors.New("connection refused")
	_, err = cache.Load(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}
