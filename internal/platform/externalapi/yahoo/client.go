package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
	"biotech_monitor/internal/platform/externalapi/yahoo/dto"
)

// Client はYahoo FinanceのquoteSummaryエンドポイントを呼び出します。
// APIキーは不要ですが、ブラウザ風のUser-Agentがないと拒否されます。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// quoteSummary は指定モジュールを1回のリクエストで取得します。
func (c *Client) quoteSummary(ctx context.Context, symbol string, modules ...string) (dto.QuoteSummaryResult, error) {
	q := url.Values{}
	q.Set("modules", strings.Join(modules, ","))

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return dto.QuoteSummaryResult{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; biotech-monitor/1.0)")

	res, err := c.client.Do(req)
	if err != nil {
		return dto.QuoteSummaryResult{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return dto.QuoteSummaryResult{}, fmt.Errorf("yahoo http %d: %s", res.StatusCode, symbol)
	}

	var body dto.QuoteSummaryResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return dto.QuoteSummaryResult{}, err
	}
	if e := body.QuoteSummary.Error; e != nil {
		return dto.QuoteSummaryResult{}, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if len(body.QuoteSummary.Result) == 0 {
		return dto.QuoteSummaryResult{}, fmt.Errorf("yahoo: no result for %s", symbol)
	}
	return body.QuoteSummary.Result[0], nil
}

// Profile は企業名とセクター/業種を取得します。二次ソースなので
// 欠損フィールドは空文字列のままにし、呼び出し元で補完判断します。
func (c *Client) Profile(ctx context.Context, symbol string) (entity.FallbackProfile, error) {
	r, err := c.quoteSummary(ctx, symbol, "assetProfile", "price")
	if err != nil {
		return entity.FallbackProfile{}, err
	}

	var p entity.FallbackProfile
	if r.Price != nil {
		p.LongName = r.Price.LongName
		p.ShortName = r.Price.ShortName
	}
	if r.AssetProfile != nil {
		p.Sector = r.AssetProfile.Sector
		p.Industry = r.AssetProfile.Industry
	}
	return p, nil
}

// FiftyTwoWeekRange は52週高値・安値を返します。未報告の値は nil です。
func (c *Client) FiftyTwoWeekRange(ctx context.Context, symbol string) (high, low *float64, err error) {
	r, err := c.quoteSummary(ctx, symbol, "summaryDetail")
	if err != nil {
		return nil, nil, err
	}
	if r.SummaryDetail == nil {
		return nil, nil, nil
	}
	return r.SummaryDetail.FiftyTwoWeekHigh.Raw, r.SummaryDetail.FiftyTwoWeekLow.Raw, nil
}

// InsiderTransactions はインサイダー取引の一覧を取得します。
// 取引種別はプロバイダの説明文から推定し、判別できなければ空のままにします。
func (c *Client) InsiderTransactions(ctx context.Context, symbol string) ([]entity.InsiderTransaction, error) {
	r, err := c.quoteSummary(ctx, symbol, "insiderTransactions")
	if err != nil {
		return nil, err
	}
	if r.InsiderTransactions == nil {
		return nil, nil
	}

	out := make([]entity.InsiderTransaction, 0, len(r.InsiderTransactions.Transactions))
	for _, v := range r.InsiderTransactions.Transactions {
		tx := entity.InsiderTransaction{
			Insider:  v.FilerName,
			Position: v.FilerRelation,
			Type:     transactionLabel(v.TransactionText),
		}
		if v.StartDate.Raw != nil {
			tx.Date = time.Unix(int64(*v.StartDate.Raw), 0).UTC()
		}
		if v.Shares.Raw != nil {
			tx.Shares = int64(*v.Shares.Raw)
		}
		if v.Value.Raw != nil {
			tx.Value = *v.Value.Raw
		}
		out = append(out, tx)
	}
	return out, nil
}

// transactionLabel は取引説明文から種別を推定します。
func transactionLabel(text string) string {
	switch {
	case strings.Contains(strings.ToLower(text), "sale"):
		return entity.TransactionSale
	case strings.Contains(strings.ToLower(text), "purchase"),
		strings.Contains(strings.ToLower(text), "buy"):
		return entity.TransactionPurchase
	default:
		return ""
	}
}
