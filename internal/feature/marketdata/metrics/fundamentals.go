package metrics

import (
	"biotech_monitor/internal/feature/marketdata/domain/entity"
)

// ttmQuarters はTTMとトレーリングP/Eの計算に必要な四半期数です。
const ttmQuarters = 4

// yoyOffset は前年同期として参照する四半期オフセットです。
const yoyOffset = 4

// Valuation は株価と四半期報告（新しい順）からバリュエーション指標を計算します。
// EPSを報告した四半期がちょうど4件揃わない場合、trailing P/E は nil です。
func Valuation(price float64, quarters []entity.QuarterlyReport) entity.Valuation {
	// 連続した直近4四半期すべてがEPSを報告している場合のみ対象とする
	eps := make([]float64, 0, ttmQuarters)
	if len(quarters) >= ttmQuarters {
		for _, q := range quarters[:ttmQuarters] {
			v := q.EPS()
			if v == nil {
				eps = eps[:0]
				break
			}
			eps = append(eps, *v)
		}
	}
	pe, trailingEPS := TrailingPE(price, eps)
	return entity.Valuation{
		TrailingPE:  pe,
		TrailingEPS: trailingEPS,
		Price:       Round2(price),
	}
}

// Financials は四半期報告（新しい順）から財務メトリクス一式を組み立てます。
// 報告が空の場合はゼロ値の構造体（全フィールド nil）を返します。
func Financials(quarters []entity.QuarterlyReport) entity.Financials {
	var f entity.Financials
	if len(quarters) == 0 {
		return f
	}

	latest := quarters[0]
	f.Quarterly = entity.QuarterlyHighlights{
		Revenue:         latest.Revenue,
		GrossProfit:     latest.GrossProfit,
		OperatingIncome: latest.OperatingIncome,
		NetIncome:       latest.NetIncome,
		EPS: entity.EPSSnapshot{
			Basic:   latest.BasicEPS,
			Diluted: latest.DilutedEPS,
		},
	}
	f.BalanceSheet = entity.BalanceSheetHighlights{
		TotalAssets:        latest.TotalAssets,
		TotalLiabilities:   latest.TotalLiabilities,
		TotalEquity:        latest.Equity,
		CurrentAssets:      latest.CurrentAssets,
		CurrentLiabilities: latest.CurrentLiabilities,
	}
	f.Period = entity.PeriodInfo{
		FiscalYear:   latest.FiscalYear,
		FiscalPeriod: latest.FiscalPeriod,
		StartDate:    latest.StartDate,
		EndDate:      latest.EndDate,
	}

	// 前年同期比には5四半期以上の報告が必要
	if len(quarters) > yoyOffset {
		yearAgo := quarters[yoyOffset]
		f.Growth = entity.GrowthMetrics{
			RevenueGrowth: YoYGrowth(latest.Revenue, yearAgo.Revenue),
			IncomeGrowth:  YoYGrowth(latest.NetIncome, yearAgo.NetIncome),
			EPSGrowth:     YoYGrowth(latest.DilutedEPS, yearAgo.DilutedEPS),
		}
	}

	f.Ratios = entity.KeyRatios{
		CurrentRatio:  Ratio(latest.CurrentAssets, latest.CurrentLiabilities),
		DebtToEquity:  Ratio(latest.TotalLiabilities, latest.Equity),
		AssetTurnover: Ratio(latest.Revenue, latest.TotalAssets),
		EquityRatio:   Ratio(latest.Equity, latest.TotalAssets),
	}

	f.TTM = ttm(quarters)
	return f
}

// ttm は直近4四半期（報告が少なければある分だけ）の合計を返します。
func ttm(quarters []entity.QuarterlyReport) entity.TTMMetrics {
	if len(quarters) > ttmQuarters {
		quarters = quarters[:ttmQuarters]
	}
	var revenue, netIncome, operatingIncome float64
	var haveRevenue, haveIncome, haveOperating bool
	for _, q := range quarters {
		if q.Revenue != nil {
			revenue += *q.Revenue
			haveRevenue = true
		}
		if q.NetIncome != nil {
			netIncome += *q.NetIncome
			haveIncome = true
		}
		if q.OperatingIncome != nil {
			operatingIncome += *q.OperatingIncome
			haveOperating = true
		}
	}
	var m entity.TTMMetrics
	if haveRevenue {
		m.Revenue = Round2(revenue)
	}
	if haveIncome {
		m.NetIncome = Round2(netIncome)
	}
	if haveOperating {
		m.OperatingIncome = Round2(operatingIncome)
	}
	return m
}
