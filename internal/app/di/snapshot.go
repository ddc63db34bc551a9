package di

import (
	"github.com/redis/go-redis/v9"

	"biotech_monitor/internal/feature/marketdata/usecase"
	"biotech_monitor/internal/platform/cache"
	"biotech_monitor/internal/platform/snapshot"
)

// NewSnapshotStore creates a SnapshotStore implementation.
// If Redis is available, the file store is wrapped with a Redis read cache.
// Otherwise, reads always hit the snapshot file.
func NewSnapshotStore(rdb *redis.Client) usecase.SnapshotStore {
	fileStore := snapshot.NewFileStore("")
	if rdb != nil {
		return cache.NewCachingSnapshotStore(rdb, 0, fileStore, "")
	}
	return fileStore
}
