// Package dto はwatchlistフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

// AddTickerRequest は監視銘柄追加リクエストのボディです。
type AddTickerRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// TickerItem は監視銘柄1件のレスポンス表現です。
type TickerItem struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`
	Active   bool   `json:"active"`
}
