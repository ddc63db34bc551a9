package entity

import (
	"math"
	"time"
)

// VolumeMetrics は90日窓と直近5日窓から毎回の収集で再計算される出来高統計です。
// Invariant: パーセンテージ系フィールドは分母がゼロのとき nil であり、
// inf/NaN には決してなりません。
type VolumeMetrics struct {
	RecentVolumes []int64   `json:"recentVolumes"`
	VolumeDates   []string  `json:"volumeDates"`
	DailyChanges  []float64 `json:"dailyChanges"`
	AverageVolume *float64  `json:"averageVolume"`
	Change24h     *float64  `json:"volumeChange"`
	VsAverage     *float64  `json:"volumeVsAvg"`
	DaysIncluded  int       `json:"daysIncluded"`
}

// Technicals はテクニカル指標です。
type Technicals struct {
	RSI       *float64 `json:"rsi"`
	RSISignal string   `json:"rsi_signal,omitempty"` // "overbought" / "oversold"
	VolumeSMA *float64 `json:"volumeSMA"`
}

// AlertDetails はUI向けの個別アラートフラグです。
// Alerts カウントには TechnicalAlert と HighVolume を除く6フラグが算入されます。
type AlertDetails struct {
	PriceAlert     bool           `json:"priceAlert"`
	VolumeSpike10  bool           `json:"volumeSpike10"`
	VolumeSpike20  bool           `json:"volumeSpike20"`
	HighVolume     bool           `json:"highVolume"`
	InsiderAlert   bool           `json:"insiderAlert"`
	NewsAlert      bool           `json:"newsAlert"`
	TechnicalAlert TechnicalAlert `json:"technicalAlert"`
	NearHighAlert  bool           `json:"nearHighAlert"`
}

// TechnicalAlert は RSI の買われすぎ/売られすぎシグナルです。
type TechnicalAlert struct {
	Active bool     `json:"active"`
	Type   string   `json:"type,omitempty"`
	Value  *float64 `json:"value"`
}

// MarketDataRecord は1銘柄分の収集結果です。毎回の収集で新規に組み立てられ、
// スナップショット内の同一銘柄の旧レコードを完全に置き換えます。
type MarketDataRecord struct {
	Symbol    string `json:"symbol"`
	Timestamp string `json:"timestamp"`

	CompanyProfile

	Price          *float64 `json:"price"`
	PriceChangePct *float64 `json:"priceChange"`
	OpenPrice      *float64 `json:"openPrice"`
	PrevClose      *float64 `json:"prevClose"`
	DayHigh        *float64 `json:"dayHigh"`
	DayLow         *float64 `json:"dayLow"`
	MarketCap      *float64 `json:"marketCap"`

	Volume     int64         `json:"volume"`
	PrevVolume int64         `json:"prevVolume"`
	VolumeData VolumeMetrics `json:"volumeMetrics"`

	Technicals Technicals `json:"technicals"`

	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow"`
	HighProximityPct *float64 `json:"highProximityPct"`

	Valuation  Valuation      `json:"valuation_metrics"`
	Financials Financials     `json:"financials"`
	Insider    InsiderSummary `json:"insiderActivity"`
	RecentNews []NewsArticle  `json:"recentNews"`

	Alerts       int          `json:"alerts"`
	AlertDetails AlertDetails `json:"alertDetails"`
}

// Snapshot は1回の収集で生成された全銘柄レコードの列です。
// 収集が成功するたびに前回のスナップショットを丸ごと置き換えます。
type Snapshot struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Records     []MarketDataRecord `json:"records"`
}

// Sanitize はスナップショット内の非有限値（NaN/Inf）を nil に置き換えます。
// シリアライズ前のクリーニングパスとして SnapshotSink から呼ばれます。
func (s *Snapshot) Sanitize() {
	for i := range s.Records {
		s.Records[i].sanitize()
	}
}

func (r *MarketDataRecord) sanitize() {
	for _, p := range []**float64{
		&r.Price, &r.PriceChangePct, &r.OpenPrice, &r.PrevClose,
		&r.DayHigh, &r.DayLow, &r.MarketCap,
		&r.VolumeData.AverageVolume, &r.VolumeData.Change24h, &r.VolumeData.VsAverage,
		&r.Technicals.RSI, &r.Technicals.VolumeSMA,
		&r.FiftyTwoWeekHigh, &r.FiftyTwoWeekLow, &r.HighProximityPct,
		&r.Valuation.TrailingPE, &r.Valuation.TrailingEPS, &r.Valuation.Price,
		&r.Financials.Quarterly.Revenue, &r.Financials.Quarterly.GrossProfit,
		&r.Financials.Quarterly.OperatingIncome, &r.Financials.Quarterly.NetIncome,
		&r.Financials.Quarterly.EPS.Basic, &r.Financials.Quarterly.EPS.Diluted,
		&r.Financials.BalanceSheet.TotalAssets, &r.Financials.BalanceSheet.TotalLiabilities,
		&r.Financials.BalanceSheet.TotalEquity, &r.Financials.BalanceSheet.CurrentAssets,
		&r.Financials.BalanceSheet.CurrentLiabilities,
		&r.Financials.Growth.RevenueGrowth, &r.Financials.Growth.IncomeGrowth,
		&r.Financials.Growth.EPSGrowth,
		&r.Financials.Ratios.CurrentRatio, &r.Financials.Ratios.DebtToEquity,
		&r.Financials.Ratios.AssetTurnover, &r.Financials.Ratios.EquityRatio,
		&r.Financials.TTM.Revenue, &r.Financials.TTM.NetIncome, &r.Financials.TTM.OperatingIncome,
		&r.AlertDetails.TechnicalAlert.Value,
	} {
		nilIfNonFinite(p)
	}
	for i, c := range r.VolumeData.DailyChanges {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			r.VolumeData.DailyChanges[i] = 0
		}
	}
}

func nilIfNonFinite(p **float64) {
	if *p != nil && (math.IsNaN(**p) || math.IsInf(**p, 0)) {
		*p = nil
	}
}
