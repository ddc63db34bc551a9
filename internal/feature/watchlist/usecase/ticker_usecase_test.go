package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketentity "biotech_monitor/internal/feature/marketdata/domain/entity"
	"biotech_monitor/internal/feature/watchlist/domain/entity"
)

var errRepo = errors.New("repository error")

// mockTickerRepository is a mock implementation of the TickerRepository interface.
type mockTickerRepository struct {
	ListFunc           func(ctx context.Context) ([]entity.Ticker, error)
	FindBySymbolFunc   func(ctx context.Context, symbol string) (*entity.Ticker, error)
	CreateFunc         func(ctx context.Context, ticker *entity.Ticker) error
	DeleteBySymbolFunc func(ctx context.Context, symbol string) (bool, error)
	ListSymbolsFunc    func(ctx context.Context) ([]string, error)
}

func (m *mockTickerRepository) List(ctx context.Context) ([]entity.Ticker, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockTickerRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error) {
	if m.FindBySymbolFunc != nil {
		return m.FindBySymbolFunc(ctx, symbol)
	}
	return nil, nil
}

func (m *mockTickerRepository) Create(ctx context.Context, ticker *entity.Ticker) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ticker)
	}
	return nil
}

func (m *mockTickerRepository) DeleteBySymbol(ctx context.Context, symbol string) (bool, error) {
	if m.DeleteBySymbolFunc != nil {
		return m.DeleteBySymbolFunc(ctx, symbol)
	}
	return false, nil
}

func (m *mockTickerRepository) ListSymbols(ctx context.Context) ([]string, error) {
	if m.ListSymbolsFunc != nil {
		return m.ListSymbolsFunc(ctx)
	}
	return nil, nil
}

// mockTickerValidator is a mock implementation of the TickerValidator interface.
type mockTickerValidator struct {
	TickerDetailsFunc func(ctx context.Context, symbol string) (marketentity.CompanyReference, error)
}

func (m *mockTickerValidator) TickerDetails(ctx context.Context, symbol string) (marketentity.CompanyReference, error) {
	if m.TickerDetailsFunc != nil {
		return m.TickerDetailsFunc(ctx, symbol)
	}
	return marketentity.CompanyReference{}, nil
}

// mockTickerSearcher is a mock implementation of the TickerSearcher interface.
type mockTickerSearcher struct {
	SearchTickersFunc func(ctx context.Context, query string, limit int) ([]entity.TickerMatch, error)
}

func (m *mockTickerSearcher) SearchTickers(ctx context.Context, query string, limit int) ([]entity.TickerMatch, error) {
	if m.SearchTickersFunc != nil {
		return m.SearchTickersFunc(ctx, query, limit)
	}
	return nil, nil
}

func TestTickerUsecase_Add(t *testing.T) {
	t.Parallel()

	t.Run("validates and persists a new symbol", func(t *testing.T) {
		t.Parallel()
		var created *entity.Ticker
		repo := &mockTickerRepository{
			CreateFunc: func(ctx context.Context, ticker *entity.Ticker) error {
				created = ticker
				return nil
			},
		}
		validator := &mockTickerValidator{
			TickerDetailsFunc: func(ctx context.Context, symbol string) (marketentity.CompanyReference, error) {
				assert.Equal(t, "ABCD", symbol)
				return marketentity.CompanyReference{
					Name:        "Abcd Therapeutics Inc.",
					SICSector:   "Manufacturing",
					SICIndustry: "Pharmaceutical Preparations",
				}, nil
			},
		}
		u := NewTickerUsecase(repo, validator, &mockTickerSearcher{})

		got, err := u.Add(context.Background(), "  abcd ")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "ABCD", got.Symbol)
		assert.Equal(t, "Abcd Therapeutics Inc.", got.Name)
		assert.True(t, got.Active)
	})

	t.Run("adding an existing symbol is idempotent", func(t *testing.T) {
		t.Parallel()
		existing := entity.Ticker{ID: 7, Symbol: "ABCD", Name: "Abcd Therapeutics Inc."}
		repo := &mockTickerRepository{
			FindBySymbolFunc: func(ctx context.Context, symbol string) (*entity.Ticker, error) {
				return &existing, nil
			},
			CreateFunc: func(ctx context.Context, ticker *entity.Ticker) error {
				t.Error("Create should not be called for an existing symbol")
				return nil
			},
		}
		validator := &mockTickerValidator{
			TickerDetailsFunc: func(ctx context.Context, symbol string) (marketentity.CompanyReference, error) {
				t.Error("TickerDetails should not be called for an existing symbol")
				return marketentity.CompanyReference{}, nil
			},
		}
		u := NewTickerUsecase(repo, validator, &mockTickerSearcher{})

		got, err := u.Add(context.Background(), "ABCD")
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})

	t.Run("rejects malformed symbols", func(t *testing.T) {
		t.Parallel()
		u := NewTickerUsecase(&mockTickerRepository{}, &mockTickerValidator{}, &mockTickerSearcher{})

		for _, symbol := range []string{"", "1234", "TOOLONGSYMBOL", "AB CD", "abc$"} {
			_, err := u.Add(context.Background(), symbol)
			assert.ErrorIs(t, err, ErrInvalidSymbol, "symbol %q", symbol)
		}
	})

	t.Run("rejects symbols the provider does not know", func(t *testing.T) {
		t.Parallel()
		validator := &mockTickerValidator{
			TickerDetailsFunc: func(ctx context.Context, symbol string) (marketentity.CompanyReference, error) {
				return marketentity.CompanyReference{}, errRepo
			},
		}
		u := NewTickerUsecase(&mockTickerRepository{}, validator, &mockTickerSearcher{})

		_, err := u.Add(context.Background(), "NOPE")
		assert.ErrorIs(t, err, errRepo)
	})
}

func TestTickerUsecase_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes an existing symbol", func(t *testing.T) {
		t.Parallel()
		repo := &mockTickerRepository{
			DeleteBySymbolFunc: func(ctx context.Context, symbol string) (bool, error) {
				assert.Equal(t, "ABCD", symbol)
				return true, nil
			},
		}
		u := NewTickerUsecase(repo, &mockTickerValidator{}, &mockTickerSearcher{})
		assert.NoError(t, u.Remove(context.Background(), "abcd"))
	})

	t.Run("unknown symbol yields ErrTickerNotFound", func(t *testing.T) {
		t.Parallel()
		u := NewTickerUsecase(&mockTickerRepository{}, &mockTickerValidator{}, &mockTickerSearcher{})
		assert.ErrorIs(t, u.Remove(context.Background(), "NOPE"), ErrTickerNotFound)
	})
}

func TestTickerUsecase_Search(t *testing.T) {
	t.Parallel()

	tracked := []entity.Ticker{
		{Symbol: "ABCD", Name: "Abcd Therapeutics Inc.", Sector: "Biotechnology", Industry: "Pharmaceutical Preparations"},
		{Symbol: "WXYZ", Name: "Wxyz Biosciences", Sector: "Healthcare", Industry: "Medical Devices"},
	}

	t.Run("short query returns empty without remote call", func(t *testing.T) {
		t.Parallel()
		searcher := &mockTickerSearcher{
			SearchTickersFunc: func(ctx context.Context, query string, limit int) ([]entity.TickerMatch, error) {
				t.Error("remote search should not be called for short queries")
				return nil, nil
			},
		}
		u := NewTickerUsecase(&mockTickerRepository{}, &mockTickerValidator{}, searcher)

		got, err := u.Search(context.Background(), "a")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("tracked matches come first and remote duplicates are dropped", func(t *testing.T) {
		t.Parallel()
		repo := &mockTickerRepository{
			ListFunc: func(ctx context.Context) ([]entity.Ticker, error) { return tracked, nil },
		}
		searcher := &mockTickerSearcher{
			SearchTickersFunc: func(ctx context.Context, query string, limit int) ([]entity.TickerMatch, error) {
				return []entity.TickerMatch{
					{Symbol: "ABCD", Name: "Abcd Therapeutics Inc."}, // 既に監視対象
					{Symbol: "ABCE", Name: "Abce Pharma"},
				}, nil
			},
		}
		u := NewTickerUsecase(repo, &mockTickerValidator{}, searcher)

		got, err := u.Search(context.Background(), "abc")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ABCD", got[0].Symbol)
		assert.True(t, got[0].Tracked)
		assert.Equal(t, "ABCE", got[1].Symbol)
		assert.False(t, got[1].Tracked)
	})

	t.Run("matches tracked tickers by sector and industry", func(t *testing.T) {
		t.Parallel()
		repo := &mockTickerRepository{
			ListFunc: func(ctx context.Context) ([]entity.Ticker, error) { return tracked, nil },
		}
		u := NewTickerUsecase(repo, &mockTickerValidator{}, &mockTickerSearcher{})

		got, err := u.Search(context.Background(), "biotech")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ABCD", got[0].Symbol)
		assert.Equal(t, "Biotechnology", got[0].Sector)
		assert.Equal(t, "Pharmaceutical Preparations", got[0].Industry)

		got, err = u.Search(context.Background(), "medical devices")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "WXYZ", got[0].Symbol)
	})

	t.Run("remote failure still returns local matches", func(t *testing.T) {
		t.Parallel()
		repo := &mockTickerRepository{
			ListFunc: func(ctx context.Context) ([]entity.Ticker, error) { return tracked, nil },
		}
		searcher := &mockTickerSearcher{
			SearchTickersFunc: func(ctx context.Context, query string, limit int) ([]entity.TickerMatch, error) {
				return nil, errRepo
			},
		}
		u := NewTickerUsecase(repo, &mockTickerValidator{}, searcher)

		got, err := u.Search(context.Background(), "wxyz")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "WXYZ", got[0].Symbol)
	})
}
