// Package dto defines data transfer objects for the Yahoo Finance quoteSummary responses.
package dto

// RawValue is Yahoo's number wrapper. Raw is nil when the field is absent.
type RawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// QuoteSummaryResponse represents the JSON response from /v10/finance/quoteSummary/{symbol}.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummaryResult holds the requested modules for one symbol.
type QuoteSummaryResult struct {
	AssetProfile *struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
	Price *struct {
		LongName  string `json:"longName"`
		ShortName string `json:"shortName"`
	} `json:"price"`
	SummaryDetail *struct {
		FiftyTwoWeekHigh RawValue `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  RawValue `json:"fiftyTwoWeekLow"`
	} `json:"summaryDetail"`
	InsiderTransactions *struct {
		Transactions []struct {
			FilerName       string   `json:"filerName"`
			FilerRelation   string   `json:"filerRelation"`
			TransactionText string   `json:"transactionText"`
			Shares          RawValue `json:"shares"`
			Value           RawValue `json:"value"`
			StartDate       RawValue `json:"startDate"`
		} `json:"transactions"`
	} `json:"insiderTransactions"`
}
