// Package snapshot provides file-backed persistence for collection snapshots.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
	"biotech_monitor/internal/feature/marketdata/usecase"
)

// FileStore はスナップショットを単一のJSONドキュメントとして保存します。
// 書き込みは一時ファイル経由のアトミック置換で、読み手が壊れた
// ドキュメントを見ることはありません。
type FileStore struct {
	path string
}

// FileStoreがSnapshotStoreを実装していることをコンパイル時に検証します。
var _ usecase.SnapshotStore = (*FileStore)(nil)

// NewFileStore は指定パスに書き込むFileStoreの新しいインスタンスを生成します。
// パスが空の場合は SNAPSHOT_PATH、それも空なら data/market_data.json を使います。
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = os.Getenv("SNAPSHOT_PATH")
	}
	if path == "" {
		path = "data/market_data.json"
	}
	return &FileStore{path: path}
}

// Save はスナップショットをサニタイズしてからJSONとして書き出します。
// 非有限値（NaN/Inf）はここで nil に置き換えられるため、
// シリアライズが失敗することはありません。
func (fs *FileStore) Save(ctx context.Context, snapshot entity.Snapshot) error {
	snapshot.Sanitize()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name()) // rename 済みなら失敗するだけ
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load は最後に保存されたスナップショットを読み出します。
func (fs *FileStore) Load(ctx context.Context) (entity.Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entity.Snapshot{}, usecase.ErrNoSnapshot
		}
		return entity.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot entity.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return entity.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}
