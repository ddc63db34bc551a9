// Package usecase はmarketdataフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
	"biotech_monitor/internal/feature/marketdata/insider"
	"biotech_monitor/internal/feature/marketdata/metrics"
	"biotech_monitor/internal/shared/progress"
)

const (
	recentBarDays    = 5   // 直近価格・出来高に使う日数
	historyBarDays   = 90  // 出来高平均とRSIに使う日数
	rsiPeriod        = 14  // RSIの期間
	volumeSMAWindow  = 20  // 出来高SMAの窓
	newsLimit        = 5   // 1銘柄あたりのニュース件数
	newsDaysBack     = 30  // ニュースの遡及日数
	financialsLimit  = 8   // 取得する四半期報告の件数
	insiderLookback  = 3   // インサイダー取引の遡及月数
	priceAlertPct    = 5.0 // 価格変動アラートの閾値（%）
	nearHighPct      = 5.0 // 52週高値接近アラートの閾値（%）
	highVolumePct    = 50.0
	volumeSpike10Pct = 10.0
	volumeSpike20Pct = 20.0

	timestampLayout = "2006-01-02 15:04:05"
)

// ErrNoPriceData は直近の価格バーが1本も取得できなかった場合に返されます。
// この銘柄はスキップされ、スナップショットに含まれません。
var ErrNoPriceData = errors.New("marketdata: no recent price data")

// ErrNoTickers は監視対象の銘柄が1件もない場合に返されます。
var ErrNoTickers = errors.New("marketdata: no tickers configured")

// ReferenceProvider は一次ソースから市場データを取得するインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ReferenceProvider interface {
	// Validate は収集を始める前に必須設定の欠落を検出します。
	Validate() error
	TickerDetails(ctx context.Context, symbol string) (entity.CompanyReference, error)
	Aggregates(ctx context.Context, symbol string, days int) ([]entity.PriceBar, error)
	News(ctx context.Context, symbol string, limit, daysBack int) ([]entity.NewsArticle, error)
	QuarterlyFinancials(ctx context.Context, symbol string, limit int) ([]entity.QuarterlyReport, error)
}

// QuoteProvider は二次ソースから補完データを取得するインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteProvider interface {
	Profile(ctx context.Context, symbol string) (entity.FallbackProfile, error)
	FiftyTwoWeekRange(ctx context.Context, symbol string) (high, low *float64, err error)
	InsiderTransactions(ctx context.Context, symbol string) ([]entity.InsiderTransaction, error)
}

// SentimentAnalyzer はニュース記事のセンチメントを生成するインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// SnapshotStore はスナップショットを永続化するインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SnapshotStore interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
	Load(ctx context.Context) (entity.Snapshot, error)
}

// SymbolLister は監視対象の銘柄シンボル一覧を返すインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolLister interface {
	ListSymbols(ctx context.Context) ([]string, error)
}

// CollectUsecase は全監視銘柄の市場データを収集し、スナップショットとして
// 永続化するユースケースを定義します。
type CollectUsecase struct {
	reference ReferenceProvider
	quote     QuoteProvider
	sentiment SentimentAnalyzer // nil の場合はセンチメント補完をスキップ
	store     SnapshotStore
	symbols   SymbolLister
	tracker   *progress.Tracker
	now       func() time.Time
}

// NewCollectUsecase は新しい CollectUsecase を作成します。
func NewCollectUsecase(
	reference ReferenceProvider,
	quote QuoteProvider,
	sentiment SentimentAnalyzer,
	store SnapshotStore,
	symbols SymbolLister,
	tracker *progress.Tracker,
) *CollectUsecase {
	return &CollectUsecase{
		reference: reference,
		quote:     quote,
		sentiment: sentiment,
		store:     store,
		symbols:   symbols,
		tracker:   tracker,
		now:       time.Now,
	}
}

// Refresh は収集ランをバックグラウンドで開始します。
// 既にランが進行中の場合は progress.ErrAlreadyRunning を返します。
// 前提条件（APIキー、銘柄リスト）を満たさない場合はランを開始せず
// エラーを返し、前回のスナップショットはそのまま残ります。
func (cu *CollectUsecase) Refresh(ctx context.Context) error {
	symbols, err := cu.symbols.ListSymbols(ctx)
	if err != nil {
		return fmt.Errorf("list symbols: %w", err)
	}

	if err := cu.tracker.Start(len(symbols)); err != nil {
		return err
	}

	if err := cu.reference.Validate(); err != nil {
		cu.tracker.Fail(err.Error())
		return err
	}
	if len(symbols) == 0 {
		cu.tracker.Fail(ErrNoTickers.Error())
		return ErrNoTickers
	}

	// HTTPリクエストのコンテキストに紐付けない
	go cu.run(context.WithoutCancel(ctx), symbols)
	return nil
}

// RunSync は収集ランを同期実行します。CLIから使用します。
func (cu *CollectUsecase) RunSync(ctx context.Context, symbols []string) error {
	var err error
	if len(symbols) == 0 {
		symbols, err = cu.symbols.ListSymbols(ctx)
		if err != nil {
			return fmt.Errorf("list symbols: %w", err)
		}
	}
	if err := cu.tracker.Start(len(symbols)); err != nil {
		return err
	}
	if err := cu.reference.Validate(); err != nil {
		cu.tracker.Fail(err.Error())
		return err
	}
	if len(symbols) == 0 {
		cu.tracker.Fail(ErrNoTickers.Error())
		return ErrNoTickers
	}
	return cu.run(ctx, symbols)
}

// run は全銘柄を順番に処理します。1銘柄の失敗はログに残して次へ進みます。
// 1銘柄分以上のレコードが得られた場合のみスナップショットを置き換えます。
func (cu *CollectUsecase) run(ctx context.Context, symbols []string) error {
	started := cu.now()
	records := make([]entity.MarketDataRecord, 0, len(symbols))

	for _, symbol := range symbols {
		record, err := cu.collectOne(ctx, symbol)
		if err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
			slog.Error("failed to collect market data", "symbol", symbol, "error", err)
			cu.tracker.Advance(symbol)
			continue
		}
		records = append(records, record)
		cu.tracker.Advance(symbol)
		slog.Info("collected market data", "symbol", symbol, "alerts", record.Alerts)
	}

	if len(records) == 0 {
		cu.tracker.Fail("no records collected")
		return fmt.Errorf("marketdata: no records collected for %d symbols", len(symbols))
	}

	snapshot := entity.Snapshot{GeneratedAt: cu.now(), Records: records}
	if err := cu.store.Save(ctx, snapshot); err != nil {
		cu.tracker.Fail(err.Error())
		return fmt.Errorf("save snapshot: %w", err)
	}

	cu.tracker.Complete()
	slog.Info("collection run finished",
		"symbols", len(symbols),
		"records", len(records),
		"duration", cu.now().Sub(started).String())
	return nil
}

// collectOne は1銘柄分の市場データを収集してレコードを組み立てます。
// 直近の価格バーだけは必須で、それ以外のデータソースの失敗は
// 該当フィールドを欠損のままにして処理を続けます。
func (cu *CollectUsecase) collectOne(ctx context.Context, symbol string) (entity.MarketDataRecord, error) {
	record := entity.MarketDataRecord{
		Symbol:    symbol,
		Timestamp: cu.now().Format(timestampLayout),
	}

	// 企業プロフィール（両ソースとも失敗しても続行）
	ref, err := cu.reference.TickerDetails(ctx, symbol)
	if err != nil {
		slog.Warn("ticker details unavailable", "symbol", symbol, "error", err)
	}
	fallback, err := cu.quote.Profile(ctx, symbol)
	if err != nil {
		slog.Warn("fallback profile unavailable", "symbol", symbol, "error", err)
	}
	record.CompanyProfile = ResolveProfile(symbol, ref, fallback)
	if ref.MarketCap > 0 {
		record.MarketCap = metrics.Round2(ref.MarketCap)
	}

	// 直近の価格バーは必須
	recent, err := cu.reference.Aggregates(ctx, symbol, recentBarDays)
	if err != nil {
		return entity.MarketDataRecord{}, fmt.Errorf("recent bars: %w", err)
	}
	if len(recent) == 0 {
		return entity.MarketDataRecord{}, ErrNoPriceData
	}

	latest := recent[len(recent)-1]
	prevClose := latest.Close
	if len(recent) > 1 {
		prevClose = recent[len(recent)-2].Close
	}
	record.Price = metrics.Round2(latest.Close)
	record.PriceChangePct = metrics.PercentChange(latest.Close, prevClose)
	record.OpenPrice = metrics.Round2(latest.Open)
	record.PrevClose = metrics.Round2(prevClose)
	record.DayHigh = metrics.Round2(latest.High)
	record.DayLow = metrics.Round2(latest.Low)

	// 出来高統計とテクニカル指標
	history, err := cu.reference.Aggregates(ctx, symbol, historyBarDays)
	if err != nil {
		slog.Warn("volume history unavailable", "symbol", symbol, "error", err)
	}
	volumeData, current, previous := metrics.VolumeMetrics(recent, history)
	record.VolumeData = volumeData
	record.Volume = current
	record.PrevVolume = previous
	record.Technicals = technicals(history)

	// 52週レンジ
	high, low, err := cu.quote.FiftyTwoWeekRange(ctx, symbol)
	if err != nil {
		slog.Warn("52-week range unavailable", "symbol", symbol, "error", err)
	}
	record.FiftyTwoWeekHigh = high
	record.FiftyTwoWeekLow = low
	if high != nil && *high > 0 {
		record.HighProximityPct = metrics.Round2((*high - latest.Close) / *high * 100)
	}

	// インサイダー取引
	transactions, err := cu.quote.InsiderTransactions(ctx, symbol)
	if err != nil {
		slog.Warn("insider transactions unavailable", "symbol", symbol, "error", err)
	}
	record.Insider = insider.Summarize(transactions, cu.now(), insiderLookback)

	// ニュースとセンチメント
	news, err := cu.reference.News(ctx, symbol, newsLimit, newsDaysBack)
	if err != nil {
		slog.Warn("news unavailable", "symbol", symbol, "error", err)
	}
	record.RecentNews = cu.fillSentiment(ctx, symbol, news)

	// 財務とバリュエーション
	quarters, err := cu.reference.QuarterlyFinancials(ctx, symbol, financialsLimit)
	if err != nil {
		slog.Warn("financials unavailable", "symbol", symbol, "error", err)
	}
	record.Valuation = metrics.Valuation(latest.Close, quarters)
	record.Financials = metrics.Financials(quarters)

	record.AlertDetails, record.Alerts = alerts(record)
	return record, nil
}

// technicals は90日履歴からRSIと出来高SMAを計算します。
func technicals(history []entity.PriceBar) entity.Technicals {
	var t entity.Technicals
	t.RSI = metrics.RSI(entity.Closes(history), rsiPeriod)
	if t.RSI != nil {
		switch {
		case *t.RSI > 70:
			t.RSISignal = "overbought"
		case *t.RSI < 30:
			t.RSISignal = "oversold"
		}
	}

	volumes := entity.Volumes(history)
	series := make([]float64, len(volumes))
	for i, v := range volumes {
		series[i] = float64(v)
	}
	t.VolumeSMA = metrics.SMA(series, volumeSMAWindow)
	return t
}

// fillSentiment は一次ソースがセンチメントを付けなかった記事を
// アナライザで補完します。アナライザ未設定や失敗時は記事をそのまま残します。
func (cu *CollectUsecase) fillSentiment(ctx context.Context, symbol string, news []entity.NewsArticle) []entity.NewsArticle {
	if cu.sentiment == nil {
		return news
	}
	for i := range news {
		if news[i].Sentiment != "" {
			continue
		}
		prompt := fmt.Sprintf(
			"Classify the sentiment of this news headline about %s for investors. Answer with one word: positive, negative, or neutral.\n\n%s",
			symbol, news[i].Title)
		answer, err := cu.sentiment.Analyze(ctx, prompt)
		if err != nil {
			slog.Warn("sentiment analysis failed", "symbol", symbol, "error", err)
			continue
		}
		news[i].Sentiment = normalizeSentiment(answer)
	}
	return news
}

// normalizeSentiment はモデルの応答を既知のラベルに正規化します。
func normalizeSentiment(answer string) string {
	s := strings.ToLower(strings.TrimSpace(answer))
	for _, label := range []string{"positive", "negative", "neutral"} {
		if strings.Contains(s, label) {
			return label
		}
	}
	return ""
}

// alerts はレコードからアラートフラグを導出します。
// カウントに算入されるのは6フラグのみで、HighVolume と TechnicalAlert は
// UI表示用の補助フラグです。
func alerts(record entity.MarketDataRecord) (entity.AlertDetails, int) {
	var d entity.AlertDetails

	if record.PriceChangePct != nil {
		d.PriceAlert = abs(*record.PriceChangePct) > priceAlertPct
	}
	if record.VolumeData.Change24h != nil {
		d.VolumeSpike10 = *record.VolumeData.Change24h >= volumeSpike10Pct
		d.VolumeSpike20 = *record.VolumeData.Change24h >= volumeSpike20Pct
	}
	if record.VolumeData.VsAverage != nil {
		d.HighVolume = *record.VolumeData.VsAverage > highVolumePct
	}
	d.InsiderAlert = len(record.Insider.NotableTrades) > 0
	d.NewsAlert = len(record.RecentNews) > 0
	if record.HighProximityPct != nil {
		d.NearHighAlert = *record.HighProximityPct <= nearHighPct
	}
	if rsi := record.Technicals.RSI; rsi != nil && (*rsi > 70 || *rsi < 30) {
		d.TechnicalAlert = entity.TechnicalAlert{
			Active: true,
			Type:   record.Technicals.RSISignal,
			Value:  rsi,
		}
	}

	count := 0
	for _, active := range []bool{
		d.PriceAlert, d.VolumeSpike10, d.VolumeSpike20,
		d.InsiderAlert, d.NewsAlert, d.NearHighAlert,
	} {
		if active {
			count++
		}
	}
	return d, count
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
