// Package insider はインサイダー取引行の分類と集計を行います。
// ソースが取引ラベルを付けない行は金額/株価ヒューリスティックで分類します。
package insider

import (
	"sort"
	"strings"
	"time"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
)

const (
	// awardPriceThreshold はラベルなし取引を Stock Award と判定する
	// 1株あたり価格の閾値（ドル）です。これ未満は付与/報奨とみなします。
	// TODO: この閾値と「未分類は Purchase」のフォールバックは根拠未確認の
	// ヒューリスティック。プロダクト側の確認待ち。
	awardPriceThreshold = 20.0

	// notableValueThreshold は注目取引として扱う取引金額の下限（ドル）です。
	notableValueThreshold = 100_000.0

	// defaultLookbackMonths はデフォルトの遡及期間（月）です。
	defaultLookbackMonths = 3
)

// Categorize は1件の取引のカテゴリを決定します。
// ソース提供のラベルが非空ならそれをそのまま使い、空の場合は
// 1株あたり価格から Sale / Stock Award を推定します。
func Categorize(tx entity.InsiderTransaction) string {
	if label := strings.TrimSpace(tx.Type); label != "" {
		return label
	}
	if tx.Value > 0 {
		if tx.Shares != 0 && tx.Value/float64(tx.Shares) < awardPriceThreshold {
			return entity.TransactionAward
		}
		return entity.TransactionSale
	}
	return entity.TransactionPurchase
}

// Summarize は取引行を遡及期間でフィルタし、カテゴリ別に集計します。
// Sale / Stock Award のどちらでもない取引はすべて Purchase として扱います
// （残余クラス。個別には検出しません）。
// 取引が1件もなければ全ゼロのサマリを返します（エラーにはしません）。
func Summarize(transactions []entity.InsiderTransaction, now time.Time, lookbackMonths int) entity.InsiderSummary {
	if lookbackMonths <= 0 {
		lookbackMonths = defaultLookbackMonths
	}
	cutoff := now.AddDate(0, 0, -30*lookbackMonths)

	summary := entity.InsiderSummary{NotableTrades: []entity.NotableTrade{}}

	var latest time.Time
	for _, tx := range transactions {
		if tx.Date.Before(cutoff) {
			continue
		}
		summary.RecentTrades++
		if tx.Date.After(latest) {
			latest = tx.Date
		}

		category := Categorize(tx)
		switch category {
		case entity.TransactionSale:
			summary.SalesCount++
			summary.TotalSales += abs64(tx.Shares)
			summary.NetShares -= tx.Shares
			summary.TotalValue.Sales += tx.Value
		case entity.TransactionAward:
			summary.AwardsCount++
			summary.TotalAwards += tx.Shares
			summary.NetShares += tx.Shares
			summary.TotalValue.Awards += tx.Value
		default:
			summary.PurchasesCount++
			summary.TotalPurchases += tx.Shares
			summary.NetShares += tx.Shares
			summary.TotalValue.Purchases += tx.Value
		}

		if tx.Value >= notableValueThreshold {
			var pricePerShare float64
			if tx.Value > 0 && tx.Shares != 0 {
				pricePerShare = tx.Value / float64(tx.Shares)
			}
			summary.NotableTrades = append(summary.NotableTrades, entity.NotableTrade{
				Date:          tx.Date.Format("2006-01-02"),
				Insider:       tx.Insider,
				Position:      tx.Position,
				Type:          category,
				Shares:        tx.Shares,
				Value:         tx.Value,
				PricePerShare: pricePerShare,
			})
		}
	}

	// 注目取引は日付降順
	sort.Slice(summary.NotableTrades, func(i, j int) bool {
		return summary.NotableTrades[i].Date > summary.NotableTrades[j].Date
	})

	if !latest.IsZero() {
		summary.LatestDate = latest.Format("2006-01-02")
	}
	return summary
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
