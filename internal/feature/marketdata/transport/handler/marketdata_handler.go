package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
	"biotech_monitor/internal/feature/marketdata/usecase"
	"biotech_monitor/internal/shared/progress"
)

// Collector は収集ランを開始するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type Collector interface {
	Refresh(ctx context.Context) error
}

// SnapshotReader はスナップショットの読み出しと進捗照会のインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SnapshotReader interface {
	Get(ctx context.Context) (entity.Snapshot, error)
	Find(ctx context.Context, symbol string) (entity.MarketDataRecord, bool, error)
	Status() progress.Status
}

// MarketDataHandler は市場データに関するHTTPリクエストを処理します。
type MarketDataHandler struct {
	collector Collector
	reader    SnapshotReader
}

// NewMarketDataHandler は新しい MarketDataHandler を作成します。
func NewMarketDataHandler(collector Collector, reader SnapshotReader) *MarketDataHandler {
	return &MarketDataHandler{collector: collector, reader: reader}
}

// Get は最後に成功した収集ランのスナップショット全体を返すAPIです。
// まだ一度も収集されていない場合は404を返します。
func (h *MarketDataHandler) Get(c *gin.Context) {
	snapshot, err := h.reader.Get(c.Request.Context())
	switch {
	case errors.Is(err, usecase.ErrNoSnapshot):
		c.JSON(http.StatusNotFound, gin.H{"error": "no market data collected yet"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, snapshot)
	}
}

// GetBySymbol はスナップショットから1銘柄分のレコードを返すAPIです。
func (h *MarketDataHandler) GetBySymbol(c *gin.Context) {
	symbol := c.Param("symbol")
	record, found, err := h.reader.Find(c.Request.Context(), symbol)
	switch {
	case errors.Is(err, usecase.ErrNoSnapshot):
		c.JSON(http.StatusNotFound, gin.H{"error": "no market data collected yet"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case !found:
		c.JSON(http.StatusNotFound, gin.H{"error": "symbol not in snapshot: " + symbol})
	default:
		c.JSON(http.StatusOK, record)
	}
}

// Refresh は収集ランをバックグラウンドで開始するAPIです。
// 既にランが進行中の場合は409を返し、新しいランは開始しません。
func (h *MarketDataHandler) Refresh(c *gin.Context) {
	err := h.collector.Refresh(c.Request.Context())
	switch {
	case errors.Is(err, progress.ErrAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{
			"error":  "refresh already in progress",
			"status": h.reader.Status(),
		})
	case errors.Is(err, usecase.ErrNoTickers):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusAccepted, gin.H{"status": "started"})
	}
}

// Status は現在の収集ランの進捗を返すAPIです。
func (h *MarketDataHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.reader.Status())
}
