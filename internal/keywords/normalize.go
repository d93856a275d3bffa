// Package keywords implements the keyword grouping pipeline: locale-aware
// normalization, duplicate merging, lexicon and pattern matching, grouping and
// volume aggregation. It performs no I/O and keeps no state between calls.
package keywords

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFold maps each Turkish diacritic letter to its ASCII base letter.
var diacriticFold = map[rune]rune{
	'ı': 'i', 'İ': 'i',
	'ş': 's', 'Ş': 's',
	'ğ': 'g', 'Ğ': 'g',
	'ü': 'u', 'Ü': 'u',
	'ö': 'o', 'Ö': 'o',
	'ç': 'c', 'Ç': 'c',
	'â': 'a', 'Â': 'a',
	'î': 'i', 'Î': 'i',
	'û': 'u', 'Û': 'u',
}

func foldRune(r rune) rune {
	if base, ok := diacriticFold[r]; ok {
		return base
	}
	return r
}

// Normalize returns the comparison key of a keyword: Turkish lowercasing,
// diacritic folding, whitespace collapsed and trimmed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Casers carry state, so the chain is built per call. Folding can leave a
	// base letter next to a combining mark, so the result is recomposed.
	t := transform.Chain(norm.NFC, cases.Lower(language.Turkish), runes.Map(foldRune), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = norm.NFC.String(strings.Map(foldRune, strings.ToLower(norm.NFC.String(text))))
	}

	return strings.Join(strings.Fields(folded), " ")
}

// HasLocaleDiacritics reports whether the raw text contains any character of
// the diacritic table.
func HasLocaleDiacritics(text string) bool {
	for _, r := range norm.NFC.String(text) {
		if _, ok := diacriticFold[r]; ok {
			return true
		}
	}
	return false
}
