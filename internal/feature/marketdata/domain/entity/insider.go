package entity

import "time"

// インサイダー取引のカテゴリ。ソースがラベルを付けない行は
// 金額/株価ヒューリスティックで分類されます（insiderパッケージ参照）。
const (
	TransactionSale     = "Sale"
	TransactionPurchase = "Purchase"
	TransactionAward    = "Stock Award"
)

// InsiderTransaction は二次ソースから取得した生のインサイダー取引行です。
// Type はソース提供のラベルで、空のことがあります。
type InsiderTransaction struct {
	Date     time.Time
	Insider  string
	Position string
	Type     string
	Shares   int64
	Value    float64
}

// NotableTrade は金額が閾値以上の注目取引です。日付降順で保持されます。
type NotableTrade struct {
	Date          string  `json:"date"`
	Insider       string  `json:"insider"`
	Position      string  `json:"position"`
	Type          string  `json:"type"`
	Shares        int64   `json:"shares"`
	Value         float64 `json:"value"`
	PricePerShare float64 `json:"price_per_share"`
}

// InsiderValueTotals はカテゴリ別の取引金額合計です。
type InsiderValueTotals struct {
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
	Awards    float64 `json:"awards"`
}

// InsiderSummary は直近のインサイダー活動の集計です。
// 取引が1件もない場合でも全フィールドがゼロ値の有効なオブジェクトになります。
type InsiderSummary struct {
	RecentTrades   int                `json:"recent_trades"`
	NetShares      int64              `json:"net_shares"`
	NotableTrades  []NotableTrade     `json:"notable_trades"`
	TotalSales     int64              `json:"total_sales"`
	TotalPurchases int64              `json:"total_purchases"`
	TotalAwards    int64              `json:"total_awards"`
	SalesCount     int                `json:"sales_count"`
	PurchasesCount int                `json:"purchases_count"`
	AwardsCount    int                `json:"awards_count"`
	TotalValue     InsiderValueTotals `json:"total_value"`
	LatestDate     string             `json:"latest_date,omitempty"`
}
