// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"biotech_monitor/internal/feature/watchlist/domain/entity"
	"biotech_monitor/internal/feature/watchlist/usecase"
)

// tickerGorm はTickerRepositoryインターフェースのGORM実装です。
type tickerGorm struct {
	db *gorm.DB
}

var _ usecase.TickerRepository = (*tickerGorm)(nil)

// NewTickerRepository は指定されたDB接続でtickerGormリポジトリの新しいインスタンスを生成します。
func NewTickerRepository(db *gorm.DB) *tickerGorm {
	return &tickerGorm{db: db}
}

// List はシンボル順にすべての監視銘柄を返します。
func (r *tickerGorm) List(ctx context.Context) ([]entity.Ticker, error) {
	var tickers []entity.Ticker
	if err := r.db.WithContext(ctx).
		Order("symbol ASC").
		Find(&tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

// FindBySymbol は指定シンボルの銘柄を返します。見つからない場合は (nil, nil) です。
func (r *tickerGorm) FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error) {
	var ticker entity.Ticker
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		First(&ticker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticker, nil
}

// Create は銘柄を追加します。シンボルの一意制約違反はエラーになります。
func (r *tickerGorm) Create(ctx context.Context, ticker *entity.Ticker) error {
	return r.db.WithContext(ctx).Create(ticker).Error
}

// DeleteBySymbol は指定シンボルの銘柄を削除し、削除した場合 true を返します。
func (r *tickerGorm) DeleteBySymbol(ctx context.Context, symbol string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Delete(&entity.Ticker{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListSymbols はシンボル順にアクティブな銘柄のシンボルのみを返します。
func (r *tickerGorm) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Ticker{}).
		Where("active = ?", true).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
