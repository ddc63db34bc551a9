package entity

// UnknownField は一次・二次ソースのどちらからも値が得られなかった場合の
// セクター/業種のプレースホルダーです。
const UnknownField = "Unknown"

// CompanyReference は一次ソース（リファレンスプロバイダ）から取得した
// 企業情報です。欠損フィールドは空文字列のままにします。
type CompanyReference struct {
	Name        string
	Description string
	SICSector   string
	SICIndustry string
	IconURL     string
	LogoURL     string
	MarketCap   float64
}

// FallbackProfile は二次ソース（クォートプロバイダ）から取得した
// 企業情報です。一次ソースが欠損したフィールドの補完にのみ使用されます。
type FallbackProfile struct {
	LongName  string
	ShortName string
	Sector    string
	Industry  string
}

// CompanyNames holds the company name as reported by each source.
type CompanyNames struct {
	Long    string `json:"long,omitempty"`
	Short   string `json:"short,omitempty"`
	Primary string `json:"primary,omitempty"`
}

// CompanyProfile は銘柄ごとに毎回の収集で導出される企業プロフィールです。
// Invariant: Sector/Industry が "Unknown" になるのは両方のソースが
// 値を返さなかった場合のみです。
type CompanyProfile struct {
	Names       CompanyNames `json:"names"`
	Sector      string       `json:"sector"`
	Industry    string       `json:"industry"`
	Description string       `json:"description,omitempty"`
	IconURL     string       `json:"iconUrl,omitempty"`
	LogoURL     string       `json:"logoUrl,omitempty"`
}
