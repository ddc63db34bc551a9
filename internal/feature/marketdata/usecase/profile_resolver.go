package usecase

import (
	"biotech_monitor/internal/feature/marketdata/domain/entity"
)

// ResolveProfile は一次ソースのリファレンス情報と二次ソースのプロフィールを
// 1つの企業プロフィールに統合します。一次ソースの値が常に優先され、
// 二次ソースは一次ソースが埋めなかったフィールドの補完にのみ使われます。
// どちらのソースも失敗していても（ゼロ値でも）有効なプロフィールを返します。
func ResolveProfile(symbol string, ref entity.CompanyReference, fallback entity.FallbackProfile) entity.CompanyProfile {
	p := entity.CompanyProfile{
		Names: entity.CompanyNames{
			Long:  fallback.LongName,
			Short: fallback.ShortName,
		},
		Description: ref.Description,
		IconURL:     ref.IconURL,
		LogoURL:     ref.LogoURL,
	}

	p.Names.Primary = firstNonEmpty(ref.Name, fallback.LongName, fallback.ShortName, symbol)
	p.Sector = firstNonEmpty(ref.SICSector, fallback.Sector, entity.UnknownField)
	p.Industry = firstNonEmpty(ref.SICIndustry, fallback.Industry, entity.UnknownField)
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
