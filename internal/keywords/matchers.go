package keywords

import (
	"fmt"
	"regexp"
	"strings"
)

// Intent is the search intent of a keyword.
type Intent string

const (
	IntentNone       Intent = ""
	IntentPrice      Intent = "price"
	IntentComparison Intent = "comparison"
	IntentQuestion   Intent = "question"
)

type brandPattern struct {
	terms   []string // normalized name followed by normalized aliases
	display string
}

// BrandMatcher finds the first lexicon brand contained in a keyword.
type BrandMatcher struct {
	brands []brandPattern
}

// NewBrandMatcher compiles a brand lexicon. Entries whose normalized form is
// empty are dropped since they would match every keyword.
func NewBrandMatcher(entries []BrandEntry) *BrandMatcher {
	m := &BrandMatcher{}
	for _, e := range entries {
		var terms []string
		for _, t := range append([]string{e.Name}, e.Aliases...) {
			if n := Normalize(t); n != "" {
				terms = append(terms, n)
			}
		}
		if len(terms) == 0 {
			continue
		}
		m.brands = append(m.brands, brandPattern{terms: terms, display: e.DisplayName()})
	}
	return m
}

// Match returns the display name of the first brand whose name or alias occurs
// anywhere in the normalized keyword. Word boundaries are not required, so
// concatenated tokens like "michelinlastik" still match.
func (m *BrandMatcher) Match(keyword string) (string, bool) {
	return m.matchNormalized(Normalize(keyword))
}

func (m *BrandMatcher) matchNormalized(key string) (string, bool) {
	for _, b := range m.brands {
		for _, term := range b.terms {
			if strings.Contains(key, term) {
				return b.display, true
			}
		}
	}
	return "", false
}

// sizePattern matches tyre sizes: 3-digit width, 2-3 digit aspect ratio,
// optional radial marker and 2-digit rim diameter, e.g. 205/55R16, 205 55 16.
var sizePattern = regexp.MustCompile(`(?:^|\D)(\d{3})\s*[/\s-]\s*(\d{2,3})\s*[/\s-]?\s*(?:[zZ]?[rR])?\s*-?\s*(\d{2})(?:\D|$)`)

// SizeMatcher extracts the first tyre size from a raw keyword.
type SizeMatcher struct{}

// Match returns the first size found in the keyword in the canonical
// WIDTH/RATIO RDIAMETER form.
func (SizeMatcher) Match(keyword string) (string, bool) {
	m := sizePattern.FindStringSubmatch(keyword)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s/%s R%s", m[1], m[2], m[3]), true
}

// IntentMatcher classifies a keyword into at most one intent, checking the
// price, comparison and question lexicons in that order.
type IntentMatcher struct {
	tables []intentTable
}

type intentTable struct {
	intent Intent
	terms  []string
}

// NewIntentMatcher compiles the intent lexicons.
func NewIntentMatcher(lex Lexicons) *IntentMatcher {
	return &IntentMatcher{
		tables: []intentTable{
			{intent: IntentPrice, terms: normalizeTerms(lex.Price)},
			{intent: IntentComparison, terms: normalizeTerms(lex.Comparison)},
			{intent: IntentQuestion, terms: normalizeTerms(lex.Question)},
		},
	}
}

// Match returns the intent of the keyword, or IntentNone.
func (m *IntentMatcher) Match(keyword string) (Intent, bool) {
	return m.matchNormalized(Normalize(keyword))
}

func (m *IntentMatcher) matchNormalized(key string) (Intent, bool) {
	for _, table := range m.tables {
		for _, term := range table.terms {
			if strings.Contains(key, term) {
				return table.intent, true
			}
		}
	}
	return IntentNone, false
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
