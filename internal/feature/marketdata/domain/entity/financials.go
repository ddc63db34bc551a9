package entity

// QuarterlyReport は一次ソースの財務APIから正規化した四半期報告です。
// プロバイダが報告しなかった項目は nil のままにします。
type QuarterlyReport struct {
	FiscalYear         string
	FiscalPeriod       string
	StartDate          string
	EndDate            string
	Revenue            *float64
	GrossProfit        *float64
	OperatingIncome    *float64
	NetIncome          *float64
	BasicEPS           *float64
	DilutedEPS         *float64
	TotalAssets        *float64
	TotalLiabilities   *float64
	Equity             *float64
	CurrentAssets      *float64
	CurrentLiabilities *float64
	SharesOutstanding  *float64
}

// EPS は希薄化後EPSを優先し、なければ基本EPS、最後の手段として
// 純利益/発行株式数から計算した値を返します。どれも得られなければ nil です。
func (q QuarterlyReport) EPS() *float64 {
	if q.DilutedEPS != nil {
		return q.DilutedEPS
	}
	if q.BasicEPS != nil {
		return q.BasicEPS
	}
	if q.NetIncome != nil && q.SharesOutstanding != nil && *q.SharesOutstanding > 0 {
		eps := *q.NetIncome / *q.SharesOutstanding
		return &eps
	}
	return nil
}

// QuarterlyHighlights は直近四半期の損益計算書ハイライトです。
type QuarterlyHighlights struct {
	Revenue         *float64    `json:"revenue"`
	GrossProfit     *float64    `json:"gross_profit"`
	OperatingIncome *float64    `json:"operating_income"`
	NetIncome       *float64    `json:"net_income"`
	EPS             EPSSnapshot `json:"eps"`
}

// EPSSnapshot holds both EPS variants as reported.
type EPSSnapshot struct {
	Basic   *float64 `json:"basic"`
	Diluted *float64 `json:"diluted"`
}

// BalanceSheetHighlights は直近四半期の貸借対照表ハイライトです。
type BalanceSheetHighlights struct {
	TotalAssets        *float64 `json:"total_assets"`
	TotalLiabilities   *float64 `json:"total_liabilities"`
	TotalEquity        *float64 `json:"total_equity"`
	CurrentAssets      *float64 `json:"current_assets"`
	CurrentLiabilities *float64 `json:"current_liabilities"`
}

// GrowthMetrics は前年同期比の成長率（%）です。前年値がゼロ/欠損なら nil です。
type GrowthMetrics struct {
	RevenueGrowth *float64 `json:"revenue_growth"`
	IncomeGrowth  *float64 `json:"income_growth"`
	EPSGrowth     *float64 `json:"eps_growth"`
}

// KeyRatios は主要な財務比率です。分母がゼロ/欠損の比率は nil になります。
type KeyRatios struct {
	CurrentRatio  *float64 `json:"current_ratio"`
	DebtToEquity  *float64 `json:"debt_to_equity"`
	AssetTurnover *float64 `json:"asset_turnover"`
	EquityRatio   *float64 `json:"equity_ratio"`
}

// TTMMetrics は直近4四半期の合計（Trailing Twelve Months）です。
type TTMMetrics struct {
	Revenue         *float64 `json:"revenue"`
	NetIncome       *float64 `json:"net_income"`
	OperatingIncome *float64 `json:"operating_income"`
}

// PeriodInfo identifies the fiscal period the highlights were taken from.
type PeriodInfo struct {
	FiscalYear   string `json:"fiscal_year,omitempty"`
	FiscalPeriod string `json:"fiscal_period,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

// Financials は1銘柄分の財務メトリクス一式です。
type Financials struct {
	Quarterly    QuarterlyHighlights    `json:"quarterly"`
	BalanceSheet BalanceSheetHighlights `json:"balance_sheet"`
	Growth       GrowthMetrics          `json:"growth_metrics"`
	Ratios       KeyRatios              `json:"key_ratios"`
	TTM          TTMMetrics             `json:"ttm"`
	Period       PeriodInfo             `json:"period_info"`
}

// Valuation は株価ベースのバリュエーション指標です。
// TrailingPE は連続した4四半期分のEPSが揃った場合にのみ計算されます。
type Valuation struct {
	TrailingPE  *float64 `json:"trailing_pe"`
	TrailingEPS *float64 `json:"trailing_eps"`
	Price       *float64 `json:"price"`
}
