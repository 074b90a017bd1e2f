package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/account-console/internal/domain"
)

// SnapshotKey is where the last good account collection lives.
const SnapshotKey = "account-console:accounts:snapshot"

// SnapshotCache keeps the last successfully fetched account collection.
// Load returns nil, nil on a miss.
type SnapshotCache interface {
	Save(ctx context.Context, snapshot domain.AccountSnapshot) error
	Load(ctx context.Context) (*domain.AccountSnapshot, error)
}

type redisSnapshotCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisSnapshotCache stores snapshots as JSON with the given TTL; zero keeps them forever.
func NewRedisSnapshotCache(client redis.Cmdable, ttl time.Duration) SnapshotCache {
	return &redisSnapshotCache{client: client, ttl: ttl}
}

func (c *redisSnapshotCache) Save(ctx context.Context, snapshot domain.AccountSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return c.client.Set(ctx, SnapshotKey, payload, c.ttl).Err()
}

func (c *redisSnapshotCache) Load(ctx context.Context) (*domain.AccountSnapshot, error) {
	payload, err := c.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot domain.AccountSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}
