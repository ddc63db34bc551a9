// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
	"biotech_monitor/internal/feature/marketdata/usecase"
)

// CachingSnapshotStore decorates a SnapshotStore with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying store.
type CachingSnapshotStore struct {
	inner usecase.SnapshotStore
	rdb   *redis.Client
	ttl   time.Duration
	key   string
}

// CachingSnapshotStoreがSnapshotStoreを実装していることをコンパイル時に検証します。
var _ usecase.SnapshotStore = (*CachingSnapshotStore)(nil)

// NewCachingSnapshotStore decorates a SnapshotStore with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If key is empty, it uses "snapshot:latest".
func NewCachingSnapshotStore(rdb *redis.Client, ttl time.Duration, inner usecase.SnapshotStore, key string) *CachingSnapshotStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if key == "" {
		key = "snapshot:latest"
	}
	return &CachingSnapshotStore{inner: inner, rdb: rdb, ttl: ttl, key: key}
}

// Save persists the snapshot and invalidates the cached copy.
func (c *CachingSnapshotStore) Save(ctx context.Context, snapshot entity.Snapshot) error {
	if err := c.inner.Save(ctx, snapshot); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: don't fail the run if cache invalidation fails
	_ = c.rdb.Del(ctx, c.key).Err()
	return nil
}

// Load retrieves the snapshot, checking cache first then falling back to the store.
func (c *CachingSnapshotStore) Load(ctx context.Context) (entity.Snapshot, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Load(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, c.key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Snapshot
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, c.key).Err()
	}

	// 2) Fallback to the underlying store
	out, err := c.inner.Load(ctx)
	if err != nil {
		return entity.Snapshot{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, c.key, b, c.ttl).Err()
	}

	return out, nil
}
