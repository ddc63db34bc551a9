package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"biotech_monitor/internal/feature/watchlist/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Ticker{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedTicker はテスト用の銘柄データをデータベースに作成します。
func seedTicker(t *testing.T, db *gorm.DB, symbol, name string, active bool) *entity.Ticker {
	t.Helper()

	ticker := &entity.Ticker{Symbol: symbol, Name: name, Active: active}
	require.NoError(t, db.Create(ticker).Error, "failed to seed ticker")
	if !active {
		// SQLiteはINSERT時のbooleanデフォルトの扱いが異なるため明示的に更新する
		require.NoError(t, db.Model(ticker).Update("active", false).Error)
	}
	return ticker
}

func TestTickerGorm_ListAndFind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickerRepository(db)
	ctx := context.Background()

	seedTicker(t, db, "WXYZ", "Wxyz Biosciences", true)
	seedTicker(t, db, "ABCD", "Abcd Therapeutics Inc.", true)

	tickers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickers, 2)
	// シンボル昇順
	assert.Equal(t, "ABCD", tickers[0].Symbol)
	assert.Equal(t, "WXYZ", tickers[1].Symbol)

	found, err := repo.FindBySymbol(ctx, "ABCD")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Abcd Therapeutics Inc.", found.Name)

	missing, err := repo.FindBySymbol(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTickerGorm_CreateDuplicateSymbol(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Ticker{Symbol: "ABCD", Active: true}))
	// 一意制約違反
	assert.Error(t, repo.Create(ctx, &entity.Ticker{Symbol: "ABCD", Active: true}))
}

func TestTickerGorm_DeleteBySymbol(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickerRepository(db)
	ctx := context.Background()

	seedTicker(t, db, "ABCD", "Abcd Therapeutics Inc.", true)

	deleted, err := repo.DeleteBySymbol(ctx, "ABCD")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteBySymbol(ctx, "ABCD")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTickerGorm_ListSymbols(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickerRepository(db)
	ctx := context.Background()

	seedTicker(t, db, "WXYZ", "Wxyz Biosciences", true)
	seedTicker(t, db, "ABCD", "Abcd Therapeutics Inc.", true)
	seedTicker(t, db, "GONE", "Delisted Corp", false)

	symbols, err := repo.ListSymbols(ctx)
	require.NoError(t, err)
	// 非アクティブな銘柄は含まれない
	assert.Equal(t, []string{"ABCD", "WXYZ"}, symbols)
}
