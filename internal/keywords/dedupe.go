package keywords

import (
	"github.com/shopspring/decimal"

	"kwtaxonomy/internal/models"
)

// Deduplicate collapses records sharing a normalized key into one survivor per
// key. The returned slice holds new records in first-seen key order; the input
// is left untouched.
//
// On a collision the survivor takes the maximum search volume and cpc of the
// pair. Its identity (keyword and descriptive fields) comes from the record
// carrying Turkish diacritics when exactly one of the two does, otherwise from
// the incoming record only if its volume is strictly higher.
func Deduplicate(records []models.KeywordRecord) []models.KeywordRecord {
	if len(records) == 0 {
		return []models.KeywordRecord{}
	}

	index := make(map[string]int, len(records))
	out := make([]models.KeywordRecord, 0, len(records))

	for _, r := range records {
		key := Normalize(r.Keyword)
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, r)
			continue
		}
		out[i] = merge(out[i], r)
	}

	return out
}

// merge combines the running survivor with an incoming duplicate.
func merge(survivor, incoming models.KeywordRecord) models.KeywordRecord {
	volume := maxVolume(survivor.SearchVolume, incoming.SearchVolume)
	cpc := maxCPC(survivor.CPC, incoming.CPC)

	winner := survivor
	survivorMarked := HasLocaleDiacritics(survivor.Keyword)
	incomingMarked := HasLocaleDiacritics(incoming.Keyword)
	switch {
	case incomingMarked && !survivorMarked:
		winner = incoming
	case survivorMarked == incomingMarked && incoming.Volume() > survivor.Volume():
		winner = incoming
	}

	winner.SearchVolume = volume
	winner.CPC = cpc
	return winner
}

func maxVolume(a, b *int64) *int64 {
	if a == nil && b == nil {
		return nil
	}
	var v int64
	if a != nil {
		v = *a
	}
	if b != nil && *b > v {
		v = *b
	}
	return &v
}

func maxCPC(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid && !b.Valid {
		return decimal.NullDecimal{}
	}
	v := decimal.Zero
	if a.Valid {
		v = a.Decimal
	}
	if b.Valid && b.Decimal.GreaterThan(v) {
		v = b.Decimal
	}
	return decimal.NewNullDecimal(v)
}
