package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
)

// mockSnapshotStore はテスト用のSnapshotStoreモック実装です。
type mockSnapshotStore struct {
	saveFn func(ctx context.Context, snapshot entity.Snapshot) error
	loadFn func(ctx context.Context) (entity.Snapshot, error)
}

// Save はモックのSave関数を呼び出します。
func (m *mockSnapshotStore) Save(ctx context.Context, snapshot entity.Snapshot) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, snapshot)
	}
	return nil
}

// Load はモックのLoad関数を呼び出します。
func (m *mockSnapshotStore) Load(ctx context.Context) (entity.Snapshot, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return entity.Snapshot{}, nil
}

func testSnapshot() entity.Snapshot {
	return entity.Snapshot{
		GeneratedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Records:     []entity.MarketDataRecord{{Symbol: "ABCD"}},
	}
}

// TestNewCachingSnapshotStore_Defaults はデフォルト値（TTLとキー）が正しく設定されることを検証します。
func TestNewCachingSnapshotStore_Defaults(t *testing.T) {
	t.Parallel()

	store := NewCachingSnapshotStore(nil, 0, &mockSnapshotStore{}, "")
	if store.ttl != 5*time.Minute {
		t.Errorf("expected default TTL 5m, got %v", store.ttl)
	}
	if store.key != "snapshot:latest" {
		t.Errorf("expected default key snapshot:latest, got %q", store.key)
	}
}

// TestCachingSnapshotStore_Load_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingSnapshotStore_Load_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockSnapshotStore{
		loadFn: func(ctx context.Context) (entity.Snapshot, error) {
			return testSnapshot(), nil
		},
	}
	store := NewCachingSnapshotStore(nil, 0, inner, "")

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Records) != 1 || got.Records[0].Symbol != "ABCD" {
		t.Errorf("unexpected snapshot %+v", got)
	}
}

// TestCachingSnapshotStore_Load_CacheHit はキャッシュヒット時に内部ストアを呼ばないことを検証します。
func TestCachingSnapshotStore_Load_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	cached, _ := json.Marshal(testSnapshot())
	mock.ExpectGet("snapshot:latest").SetVal(string(cached))

	inner := &mockSnapshotStore{
		loadFn: func(ctx context.Context) (entity.Snapshot, error) {
			t.Error("inner store should not be called on cache hit")
			return entity.Snapshot{}, nil
		},
	}
	store := NewCachingSnapshotStore(rdb, time.Minute, inner, "")

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Records[0].Symbol != "ABCD" {
		t.Errorf("unexpected snapshot %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingSnapshotStore_Load_CacheMiss はキャッシュミス時に内部ストアの結果をキャッシュすることを検証します。
func TestCachingSnapshotStore_Load_CacheMiss(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()
	body, _ := json.Marshal(snapshot)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("snapshot:latest").RedisNil()
	mock.ExpectSet("snapshot:latest", body, time.Minute).SetVal("OK")

	inner := &mockSnapshotStore{
		loadFn: func(ctx context.Context) (entity.Snapshot, error) {
			return snapshot, nil
		},
	}
	store := NewCachingSnapshotStore(rdb, time.Minute, inner, "")

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Records[0].Symbol != "ABCD" {
		t.Errorf("unexpected snapshot %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingSnapshotStore_Save_InvalidatesCache は保存時にキャッシュが無効化されることを検証します。
func TestCachingSnapshotStore_Save_InvalidatesCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("snapshot:latest").SetVal(1)

	saved := false
	inner := &mockSnapshotStore{
		saveFn: func(ctx context.Context, snapshot entity.Snapshot) error {
			saved = true
			return nil
		},
	}
	store := NewCachingSnapshotStore(rdb, time.Minute, inner, "")

	if err := store.Save(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved {
		t.Error("inner store Save was not called")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingSnapshotStore_Save_InnerError は内部ストアの失敗でキャッシュ操作をしないことを検証します。
func TestCachingSnapshotStore_Save_InnerError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("disk full")
	rdb, mock := redismock.NewClientMock()

	inner := &mockSnapshotStore{
		saveFn: func(ctx context.Context, snapshot entity.Snapshot) error {
			return wantErr
		},
	}
	store := NewCachingSnapshotStore(rdb, time.Minute, inner, "")

	if err := store.Save(context.Background(), testSnapshot()); !errors.Is(err, wantErr) {
		t.Fatalf("expected inner error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis operations: %v", err)
	}
}
