// Package usecase implements the business logic for watchlist operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	marketentity "biotech_monitor/internal/feature/marketdata/domain/entity"
	"biotech_monitor/internal/feature/watchlist/domain/entity"
)

const (
	// searchResultLimit は検索結果の最大件数です。
	searchResultLimit = 10
	// minSearchQueryLength はこれ未満のクエリで検索しない下限文字数です。
	minSearchQueryLength = 2
)

// ErrTickerNotFound は指定シンボルが監視対象に存在しない場合に返されます。
var ErrTickerNotFound = errors.New("watchlist: ticker not found")

// ErrInvalidSymbol はシンボルの形式が不正な場合に返されます。
var ErrInvalidSymbol = errors.New("watchlist: invalid symbol")

// ErrUnknownSymbol は一次ソースがシンボルを解決できなかった場合に返されます。
var ErrUnknownSymbol = errors.New("watchlist: unknown symbol")

// validSymbol は許可されるシンボルのパターンです（米国株式形式）。
var validSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// TickerRepository abstracts the persistence layer for watchlist tickers.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerRepository interface {
	List(ctx context.Context) ([]entity.Ticker, error)
	// FindBySymbol は見つからない場合 (nil, nil) を返します。
	FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error)
	Create(ctx context.Context, ticker *entity.Ticker) error
	// DeleteBySymbol は削除した場合 true を返します。
	DeleteBySymbol(ctx context.Context, symbol string) (bool, error)
	ListSymbols(ctx context.Context) ([]string, error)
}

// TickerValidator は追加前にシンボルの実在を確認するインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerValidator interface {
	TickerDetails(ctx context.Context, symbol string) (marketentity.CompanyReference, error)
}

// TickerSearcher は外部ソースで銘柄を検索するインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerSearcher interface {
	SearchTickers(ctx context.Context, query string, limit int) ([]entity.TickerMatch, error)
}

// TickerUsecase provides business logic for watchlist operations.
type TickerUsecase struct {
	repo      TickerRepository
	validator TickerValidator
	searcher  TickerSearcher
}

// NewTickerUsecase creates a new TickerUsecase.
func NewTickerUsecase(repo TickerRepository, validator TickerValidator, searcher TickerSearcher) *TickerUsecase {
	return &TickerUsecase{repo: repo, validator: validator, searcher: searcher}
}

// List returns all watched tickers.
func (u *TickerUsecase) List(ctx context.Context) ([]entity.Ticker, error) {
	return u.repo.List(ctx)
}

// ListSymbols returns the symbols of all watched tickers.
func (u *TickerUsecase) ListSymbols(ctx context.Context) ([]string, error) {
	return u.repo.ListSymbols(ctx)
}

// Add は銘柄を監視対象に追加します。既に存在する場合は既存レコードを
// そのまま返します（冪等）。追加前に一次ソースでシンボルの実在を確認し、
// 企業名とセクター/業種を取り込みます。
func (u *TickerUsecase) Add(ctx context.Context, symbol string) (entity.Ticker, error) {
	symbol = NormalizeSymbol(symbol)
	if !validSymbol.MatchString(symbol) {
		return entity.Ticker{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}

	if existing, err := u.repo.FindBySymbol(ctx, symbol); err != nil {
		return entity.Ticker{}, err
	} else if existing != nil {
		return *existing, nil
	}

	ref, err := u.validator.TickerDetails(ctx, symbol)
	if err != nil {
		return entity.Ticker{}, fmt.Errorf("%w: %s: %w", ErrUnknownSymbol, symbol, err)
	}

	ticker := entity.Ticker{
		Symbol:   symbol,
		Name:     ref.Name,
		Sector:   ref.SICSector,
		Industry: ref.SICIndustry,
		Active:   true,
	}
	if err := u.repo.Create(ctx, &ticker); err != nil {
		return entity.Ticker{}, err
	}
	return ticker, nil
}

// Remove は銘柄を監視対象から外します。
func (u *TickerUsecase) Remove(ctx context.Context, symbol string) error {
	symbol = NormalizeSymbol(symbol)
	deleted, err := u.repo.DeleteBySymbol(ctx, symbol)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
	}
	return nil
}

// Search は監視対象と外部ソースを横断して銘柄を検索します。
// 監視対象のヒットを先頭に置き、外部結果はシンボルで重複排除します。
// クエリが短すぎる場合は空の結果を返します（外部APIを呼びません）。
func (u *TickerUsecase) Search(ctx context.Context, query string) ([]entity.TickerMatch, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchQueryLength {
		return []entity.TickerMatch{}, nil
	}

	tracked, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]entity.TickerMatch, 0, searchResultLimit)
	seen := map[string]struct{}{}
	lower := strings.ToLower(query)
	for _, t := range tracked {
		if !strings.Contains(strings.ToLower(t.Symbol), lower) &&
			!strings.Contains(strings.ToLower(t.Name), lower) &&
			!strings.Contains(strings.ToLower(t.Sector), lower) &&
			!strings.Contains(strings.ToLower(t.Industry), lower) {
			continue
		}
		matches = append(matches, entity.TickerMatch{
			Symbol:   t.Symbol,
			Name:     t.Name,
			Sector:   t.Sector,
			Industry: t.Industry,
			Tracked:  true,
		})
		seen[t.Symbol] = struct{}{}
		if len(matches) == searchResultLimit {
			return matches, nil
		}
	}

	remote, err := u.searcher.SearchTickers(ctx, query, searchResultLimit)
	if err != nil {
		// 外部検索の失敗はローカルのヒットだけで返す
		slog.Warn("remote ticker search failed", "query", query, "error", err)
		return matches, nil
	}
	for _, m := range remote {
		if _, ok := seen[m.Symbol]; ok {
			continue
		}
		seen[m.Symbol] = struct{}{}
		matches = append(matches, m)
		if len(matches) == searchResultLimit {
			break
		}
	}
	return matches, nil
}

// NormalizeSymbol はシンボルを比較可能な正規形（大文字、空白なし）にします。
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
