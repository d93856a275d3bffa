package keywords

import (
	"github.com/shopspring/decimal"

	"kwtaxonomy/internal/models"
)

func vol(v int64) *int64 {
	return &v
}

func cpc(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func rec(keyword string, volume int64) models.KeywordRecord {
	return models.KeywordRecord{Keyword: keyword, SearchVolume: vol(volume)}
}

func keywordsOf(records []models.KeywordRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Keyword)
	}
	return out
}

func findGroup(groups []models.Group, id string) (models.Group, bool) {
	for _, g := range groups {
		if g.ID == id {
			return g, true
		}
	}
	return models.Group{}, false
}
