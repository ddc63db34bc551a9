package polygon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	marketentity "biotech_monitor/internal/feature/marketdata/domain/entity"
	watchentity "biotech_monitor/internal/feature/watchlist/domain/entity"
	"biotech_monitor/internal/platform/externalapi/polygon/dto"
)

// ErrMissingAPIKey はAPIキーが未設定のままクライアントを使おうとした場合に返されます。
var ErrMissingAPIKey = errors.New("polygon: api key is not configured")

// ErrRateLimited はクールダウン後もレートリミットが解消しなかった場合に返されます。
var ErrRateLimited = errors.New("polygon: rate limited")

// rateLimitCooldown は429応答を受けた後に1回だけ待つ時間です。
const rateLimitCooldown = 60 * time.Second

// Client はPolygon.io REST APIから市場データを取得します。
// 全リクエストはトークンバケットで無料プランの上限に抑えられます。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	// テストでクールダウンを短縮するためのフック
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 5
	}
	return &Client{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		sleep:   sleepContext,
	}
}

// Validate は収集を始める前に呼び出し、必須設定の欠落を検出します。
func (c *Client) Validate() error {
	if c.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// get はレートリミット付きでGETリクエストを実行し、JSONをoutにデコードします。
// 429を受けた場合は一度だけクールダウンして ErrRateLimited を返します。
// 呼び出し元はデータなしとして扱います。
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if q == nil {
		q = url.Values{}
	}
	q.Set("apiKey", c.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusTooManyRequests {
		slog.Warn("polygon rate limit hit, cooling down", "path", path, "cooldown", rateLimitCooldown)
		if err := c.sleep(ctx, rateLimitCooldown); err != nil {
			return err
		}
		return ErrRateLimited
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("polygon http %d: %s", res.StatusCode, path)
	}

	return json.NewDecoder(res.Body).Decode(out)
}

// TickerDetails は企業のリファレンス情報を取得します。
// 業種はSIC分類から埋め、欠損フィールドは空文字列のままにします。
func (c *Client) TickerDetails(ctx context.Context, symbol string) (marketentity.CompanyReference, error) {
	var body dto.TickerDetailsResponse
	path := fmt.Sprintf("/v3/reference/tickers/%s", url.PathEscape(symbol))
	if err := c.get(ctx, path, nil, &body); err != nil {
		return marketentity.CompanyReference{}, err
	}

	r := body.Results
	industry := r.SICIndustry
	if industry == "" {
		industry = r.SICDescription
	}
	return marketentity.CompanyReference{
		Name:        r.Name,
		Description: r.Description,
		SICSector:   r.SICSector,
		SICIndustry: industry,
		IconURL:     c.brandingURL(r.Branding.IconURL),
		LogoURL:     c.brandingURL(r.Branding.LogoURL),
		MarketCap:   r.MarketCap,
	}, nil
}

// brandingURL はブランディング画像のURLにAPIキーを付与します。
// Polygonの画像は認証付きでしか取得できないため、キーなしではフロントが401になります。
func (c *Client) brandingURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("apiKey", c.cfg.APIKey)
	u.RawQuery = q.Encode()
	return u.String()
}

// Aggregates は直近days日分の日足バーを古い順で取得します。
func (c *Client) Aggregates(ctx context.Context, symbol string, days int) ([]marketentity.PriceBar, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	q := url.Values{}
	q.Set("adjusted", "true")
	q.Set("sort", "asc")
	q.Set("limit", "50000")

	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/day/%s/%s",
		url.PathEscape(symbol), from.Format("2006-01-02"), to.Format("2006-01-02"))

	var body dto.AggregatesResponse
	if err := c.get(ctx, path, q, &body); err != nil {
		return nil, err
	}

	bars := make([]marketentity.PriceBar, 0, len(body.Results))
	for _, v := range body.Results {
		bars = append(bars, marketentity.PriceBar{
			Date:   time.UnixMilli(v.Timestamp).UTC().Truncate(24 * time.Hour),
			Open:   v.Open,
			High:   v.High,
			Low:    v.Low,
			Close:  v.Close,
			Volume: int64(v.Volume),
		})
	}
	return bars, nil
}

// News は指定銘柄の直近daysBack日以内のニュースを新しい順で取得します。
// 記事に当該銘柄のインサイトが付いていればセンチメントも埋めます。
func (c *Client) News(ctx context.Context, symbol string, limit, daysBack int) ([]marketentity.NewsArticle, error) {
	q := url.Values{}
	q.Set("ticker", symbol)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("order", "desc")
	q.Set("sort", "published_utc")
	q.Set("published_utc.gte", time.Now().UTC().AddDate(0, 0, -daysBack).Format("2006-01-02"))

	var body dto.NewsResponse
	if err := c.get(ctx, "/v2/reference/news", q, &body); err != nil {
		return nil, err
	}

	articles := make([]marketentity.NewsArticle, 0, len(body.Results))
	for _, v := range body.Results {
		a := marketentity.NewsArticle{
			Title:       v.Title,
			Publisher:   v.Publisher.Name,
			Timestamp:   v.PublishedUTC,
			URL:         v.ArticleURL,
			Description: v.Description,
		}
		for _, ins := range v.Insights {
			if strings.EqualFold(ins.Ticker, symbol) {
				a.Sentiment = ins.Sentiment
				a.SentimentReasoning = ins.SentimentReasoning
				break
			}
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// QuarterlyFinancials は四半期の財務報告を新しい順で取得します。
func (c *Client) QuarterlyFinancials(ctx context.Context, symbol string, limit int) ([]marketentity.QuarterlyReport, error) {
	q := url.Values{}
	q.Set("ticker", symbol)
	q.Set("timeframe", "quarterly")
	q.Set("order", "desc")
	q.Set("limit", strconv.Itoa(limit))

	var body dto.FinancialsResponse
	if err := c.get(ctx, "/vX/reference/financials", q, &body); err != nil {
		return nil, err
	}

	reports := make([]marketentity.QuarterlyReport, 0, len(body.Results))
	for _, v := range body.Results {
		inc := v.Financials.IncomeStatement
		bal := v.Financials.BalanceSheet
		reports = append(reports, marketentity.QuarterlyReport{
			FiscalYear:         v.FiscalYear,
			FiscalPeriod:       v.FiscalPeriod,
			StartDate:          v.StartDate,
			EndDate:            v.EndDate,
			Revenue:            lineValue(inc.Revenues),
			GrossProfit:        lineValue(inc.GrossProfit),
			OperatingIncome:    lineValue(inc.OperatingIncomeLoss),
			NetIncome:          lineValue(inc.NetIncomeLoss),
			BasicEPS:           lineValue(inc.BasicEarningsPerShare),
			DilutedEPS:         lineValue(inc.DilutedEarningsPerShare),
			SharesOutstanding:  lineValue(inc.BasicAverageShares),
			TotalAssets:        lineValue(bal.Assets),
			TotalLiabilities:   lineValue(bal.Liabilities),
			Equity:             lineValue(bal.Equity),
			CurrentAssets:      lineValue(bal.CurrentAssets),
			CurrentLiabilities: lineValue(bal.CurrentLiabilities),
		})
	}
	return reports, nil
}

// SearchTickers は銘柄名またはシンボルの部分一致で上場中の銘柄を検索します。
func (c *Client) SearchTickers(ctx context.Context, query string, limit int) ([]watchentity.TickerMatch, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("market", "stocks")
	q.Set("active", "true")
	q.Set("limit", strconv.Itoa(limit))

	var body dto.TickerSearchResponse
	if err := c.get(ctx, "/v3/reference/tickers", q, &body); err != nil {
		return nil, err
	}

	matches := make([]watchentity.TickerMatch, 0, len(body.Results))
	for _, v := range body.Results {
		matches = append(matches, watchentity.TickerMatch{
			Symbol: strings.ToUpper(v.Ticker),
			Name:   v.Name,
		})
	}
	return matches, nil
}

func lineValue(item *dto.LineItem) *float64 {
	if item == nil {
		return nil
	}
	return item.Value
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
