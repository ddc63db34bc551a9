// Package dto defines data transfer objects for Polygon API responses.
package dto

// LineItem is a single reported financial line item.
type LineItem struct {
	Value *float64 `json:"value"`
}

// TickerDetailsResponse represents the JSON response from /v3/reference/tickers/{ticker}.
type TickerDetailsResponse struct {
	Status  string `json:"status"`
	Results struct {
		Ticker         string  `json:"ticker"`
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		SICSector      string  `json:"sic_sector"`
		SICIndustry    string  `json:"sic_industry"`
		SICDescription string  `json:"sic_description"`
		MarketCap      float64 `json:"market_cap"`
		Branding       struct {
			IconURL string `json:"icon_url"`
			LogoURL string `json:"logo_url"`
		} `json:"branding"`
	} `json:"results"`
}

// AggregatesResponse represents the JSON response from /v2/aggs/ticker/{ticker}/range/....
type AggregatesResponse struct {
	Status       string `json:"status"`
	Ticker       string `json:"ticker"`
	ResultsCount int    `json:"resultsCount"`
	Results      []struct {
		Timestamp int64   `json:"t"` // Unix ミリ秒
		Open      float64 `json:"o"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		Close     float64 `json:"c"`
		Volume    float64 `json:"v"`
	} `json:"results"`
}

// NewsResponse represents the JSON response from /v2/reference/news.
type NewsResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Title     string `json:"title"`
		Publisher struct {
			Name string `json:"name"`
		} `json:"publisher"`
		PublishedUTC string `json:"published_utc"`
		ArticleURL   string `json:"article_url"`
		Description  string `json:"description"`
		Insights     []struct {
			Ticker             string `json:"ticker"`
			Sentiment          string `json:"sentiment"`
			SentimentReasoning string `json:"sentiment_reasoning"`
		} `json:"insights"`
	} `json:"results"`
}

// FinancialsResponse represents the JSON response from /vX/reference/financials.
type FinancialsResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FiscalYear   string `json:"fiscal_year"`
		FiscalPeriod string `json:"fiscal_period"`
		StartDate    string `json:"start_date"`
		EndDate      string `json:"end_date"`
		Financials   struct {
			IncomeStatement struct {
				Revenues                *LineItem `json:"revenues"`
				GrossProfit             *LineItem `json:"gross_profit"`
				OperatingIncomeLoss     *LineItem `json:"operating_income_loss"`
				NetIncomeLoss           *LineItem `json:"net_income_loss"`
				BasicEarningsPerShare   *LineItem `json:"basic_earnings_per_share"`
				DilutedEarningsPerShare *LineItem `json:"diluted_earnings_per_share"`
				BasicAverageShares      *LineItem `json:"basic_average_shares"`
			} `json:"income_statement"`
			BalanceSheet struct {
				Assets             *LineItem `json:"assets"`
				Liabilities        *LineItem `json:"liabilities"`
				Equity             *LineItem `json:"equity"`
				CurrentAssets      *LineItem `json:"current_assets"`
				CurrentLiabilities *LineItem `json:"current_liabilities"`
			} `json:"balance_sheet"`
		} `json:"financials"`
	} `json:"results"`
}

// TickerSearchResponse represents the JSON response from /v3/reference/tickers.
type TickerSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Ticker string `json:"ticker"`
		Name   string `json:"name"`
		Active bool   `json:"active"`
	} `json:"results"`
}
