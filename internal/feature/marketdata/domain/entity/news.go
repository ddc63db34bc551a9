package entity

// NewsArticle は銘柄に関する直近のニュース記事です。
// Sentiment は記事にプロバイダのインサイトが付随する場合のみ設定されます。
type NewsArticle struct {
	Title              string `json:"title"`
	Publisher          string `json:"publisher"`
	Timestamp          string `json:"timestamp"`
	URL                string `json:"url"`
	Description        string `json:"description,omitempty"`
	Sentiment          string `json:"sentiment,omitempty"`
	SentimentReasoning string `json:"sentiment_reasoning,omitempty"`
}
