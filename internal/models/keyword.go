package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KeywordRecord is a single harvested keyword observation.
// Records are treated as values: the pipeline never mutates a record it was given.
type KeywordRecord struct {
	ID           *int64              `json:"id,omitempty"`
	Keyword      string              `json:"keyword"`
	SearchVolume *int64              `json:"search_volume"`
	CPC          decimal.NullDecimal `json:"cpc"`

	// Descriptive fields travel with whichever record wins a merge.
	Competition *float64       `json:"competition,omitempty"`
	Source      string         `json:"source,omitempty"`
	Category    string         `json:"category,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// Volume returns the search volume, counting an absent value as 0.
func (r KeywordRecord) Volume() int64 {
	if r.SearchVolume == nil {
		return 0
	}
	return *r.SearchVolume
}

// Project owns a set of stored keyword records.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectKeywordCount is the number of stored records per project, used for metrics export.
type ProjectKeywordCount struct {
	ProjectID uuid.UUID
	Name      string
	Count     int64
}
