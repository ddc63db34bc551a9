package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"biotech_monitor/internal/feature/watchlist/domain/entity"
	"biotech_monitor/internal/feature/watchlist/transport/http/dto"
	"biotech_monitor/internal/feature/watchlist/usecase"
)

// TickerUsecase は監視銘柄に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TickerUsecase interface {
	List(ctx context.Context) ([]entity.Ticker, error)
	Add(ctx context.Context, symbol string) (entity.Ticker, error)
	Remove(ctx context.Context, symbol string) error
	Search(ctx context.Context, query string) ([]entity.TickerMatch, error)
}

// TickerHandler は監視銘柄に関するHTTPリクエストを処理します。
type TickerHandler struct {
	uc TickerUsecase
}

// NewTickerHandler は新しい TickerHandler を作成します。
func NewTickerHandler(uc TickerUsecase) *TickerHandler {
	return &TickerHandler{uc: uc}
}

// List は監視銘柄の一覧を取得するAPIです。
func (h *TickerHandler) List(c *gin.Context) {
	tickers, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.TickerItem, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, toTickerItem(t))
	}
	c.JSON(http.StatusOK, out)
}

// Add は銘柄を監視対象に追加するAPIです。追加前に一次ソースでシンボルを
// 検証するため、実在しないシンボルは404を返します。
func (h *TickerHandler) Add(c *gin.Context) {
	var req dto.AddTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	ticker, err := h.uc.Add(c.Request.Context(), req.Symbol)
	switch {
	case errors.Is(err, usecase.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUnknownSymbol):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, toTickerItem(ticker))
	}
}

// Remove は銘柄を監視対象から外すAPIです。
func (h *TickerHandler) Remove(c *gin.Context) {
	err := h.uc.Remove(c.Request.Context(), c.Param("symbol"))
	switch {
	case errors.Is(err, usecase.ErrTickerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}

// Search は監視対象と外部ソースを横断する銘柄検索APIです。
func (h *TickerHandler) Search(c *gin.Context) {
	matches, err := h.uc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, matches)
}

func toTickerItem(t entity.Ticker) dto.TickerItem {
	return dto.TickerItem{
		Symbol:   t.Symbol,
		Name:     t.Name,
		Sector:   t.Sector,
		Industry: t.Industry,
		Active:   t.Active,
	}
}
