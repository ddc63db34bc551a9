package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"biotech_monitor/internal/feature/marketdata/domain/entity"
)

// TestResolveProfile は一次ソース優先・二次ソース補完のマージ規則を検証します。
func TestResolveProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ref      entity.CompanyReference
		fallback entity.FallbackProfile
		verify   func(t *testing.T, p entity.CompanyProfile)
	}{
		{
			name: "primary source wins",
			ref: entity.CompanyReference{
				Name:        "Abcd Therapeutics Inc.",
				SICSector:   "Manufacturing",
				SICIndustry: "Pharmaceutical Preparations",
				Description: "A clinical-stage biotech.",
			},
			fallback: entity.FallbackProfile{
				LongName: "ABCD Thera",
				Sector:   "Healthcare",
				Industry: "Biotechnology",
			},
			verify: func(t *testing.T, p entity.CompanyProfile) {
				assert.Equal(t, "Abcd Therapeutics Inc.", p.Names.Primary)
				assert.Equal(t, "Manufacturing", p.Sector)
				assert.Equal(t, "Pharmaceutical Preparations", p.Industry)
				// 二次ソースの名前も保持される
				assert.Equal(t, "ABCD Thera", p.Names.Long)
			},
		},
		{
			name: "fallback fills missing fields only",
			ref:  entity.CompanyReference{Name: "Abcd Therapeutics Inc."},
			fallback: entity.FallbackProfile{
				LongName: "ABCD Thera",
				Sector:   "Healthcare",
				Industry: "Biotechnology",
			},
			verify: func(t *testing.T, p entity.CompanyProfile) {
				assert.Equal(t, "Abcd Therapeutics Inc.", p.Names.Primary)
				assert.Equal(t, "Healthcare", p.Sector)
				assert.Equal(t, "Biotechnology", p.Industry)
			},
		},
		{
			name: "unknown only when both sources are empty",
			verify: func(t *testing.T, p entity.CompanyProfile) {
				assert.Equal(t, entity.UnknownField, p.Sector)
				assert.Equal(t, entity.UnknownField, p.Industry)
				// 名前はシンボルまで後退する
				assert.Equal(t, "ABCD", p.Names.Primary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.verify(t, ResolveProfile("ABCD", tt.ref, tt.fallback))
		})
	}
}
