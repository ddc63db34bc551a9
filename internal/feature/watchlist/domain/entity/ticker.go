// Package entity defines the domain models for the watchlist feature.
package entity

// Ticker は監視対象の銘柄です。Symbol は大文字で一意に保ちます。
type Ticker struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Symbol   string `gorm:"uniqueIndex;size:10;not null" json:"symbol"`
	Name     string `gorm:"size:255" json:"name"`
	Sector   string `gorm:"size:255" json:"sector,omitempty"`
	Industry string `gorm:"size:255" json:"industry,omitempty"`
	Active   bool   `gorm:"default:true" json:"active"`
}

// TickerMatch は銘柄検索の1件の結果です。Tracked は既に監視対象かどうかを示します。
// Sector/Industry は監視対象のヒットでのみ埋まります（外部検索は返さないため）。
type TickerMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`
	Tracked  bool   `json:"tracked"`
}
