package usecase

import (
	"context"
	"errors"
	"strings"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
	"biotech_monitor/internal/shared/progress"
)

// ErrNoSnapshot はスナップショットがまだ一度も保存されていない場合に
// SnapshotStore 実装が返すエラーです。
var ErrNoSnapshot = errors.New("marketdata: no snapshot available")

// SnapshotUsecase は保存済みスナップショットの読み出しと
// 収集ランの進捗照会を提供します。
type SnapshotUsecase struct {
	store   SnapshotStore
	tracker *progress.Tracker
}

// NewSnapshotUsecase は新しい SnapshotUsecase を作成します。
func NewSnapshotUsecase(store SnapshotStore, tracker *progress.Tracker) *SnapshotUsecase {
	return &SnapshotUsecase{store: store, tracker: tracker}
}

// Get は最後に成功した収集ランのスナップショットを返します。
func (su *SnapshotUsecase) Get(ctx context.Context) (entity.Snapshot, error) {
	return su.store.Load(ctx)
}

// Find はスナップショットから指定銘柄のレコードを探します。
func (su *SnapshotUsecase) Find(ctx context.Context, symbol string) (entity.MarketDataRecord, bool, error) {
	snapshot, err := su.store.Load(ctx)
	if err != nil {
		return entity.MarketDataRecord{}, false, err
	}
	for _, r := range snapshot.Records {
		if strings.EqualFold(r.Symbol, symbol) {
			return r, true, nil
		}
	}
	return entity.MarketDataRecord{}, false, nil
}

// Status は現在の収集ランの進捗を返します。
func (su *SnapshotUsecase) Status() progress.Status {
	return su.tracker.Status()
}
