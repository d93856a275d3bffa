package keywords

import (
	"unicode"
	"unicode/utf8"
)

// BrandEntry is one brand of the brand lexicon. Display is the canonical form
// returned on a match; when empty, Name with its first letter capitalized is used.
// Aliases are alternative spellings that resolve to the same brand.
type BrandEntry struct {
	Name    string   `yaml:"name" json:"name"`
	Display string   `yaml:"display,omitempty" json:"display,omitempty"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// DisplayName returns the canonical display form of the brand.
func (b BrandEntry) DisplayName() string {
	if b.Display != "" {
		return b.Display
	}
	return capitalize(b.Name)
}

// Lexicons holds the ordered vocabularies used by the matchers.
// Order matters: the first matching brand wins.
type Lexicons struct {
	Brands     []BrandEntry `yaml:"brands" json:"brands"`
	Price      []string     `yaml:"price" json:"price"`
	Comparison []string     `yaml:"comparison" json:"comparison"`
	Question   []string     `yaml:"question" json:"question"`
}

// Extend returns a copy of l with the entries of other appended to each table.
func (l Lexicons) Extend(other Lexicons) Lexicons {
	return Lexicons{
		Brands:     append(append([]BrandEntry(nil), l.Brands...), other.Brands...),
		Price:      append(append([]string(nil), l.Price...), other.Price...),
		Comparison: append(append([]string(nil), l.Comparison...), other.Comparison...),
		Question:   append(append([]string(nil), l.Question...), other.Question...),
	}
}

// DefaultLexicons returns the built-in Turkish tyre-market vocabularies.
func DefaultLexicons() Lexicons {
	return Lexicons{
		Brands: []BrandEntry{
			{Name: "michelin"},
			{Name: "bridgestone"},
			{Name: "continental"},
			{Name: "goodyear", Aliases: []string{"good year"}},
			{Name: "pirelli"},
			{Name: "petlas"},
			{Name: "lassa"},
			{Name: "hankook"},
			{Name: "kumho"},
			{Name: "falken"},
			{Name: "dunlop"},
			{Name: "yokohama"},
			{Name: "nokian"},
			{Name: "bfgoodrich", Display: "BFGoodrich", Aliases: []string{"bf goodrich"}},
			{Name: "toyo"},
			{Name: "nexen"},
			{Name: "vredestein"},
			{Name: "starmaxx"},
			{Name: "kleber"},
			{Name: "firestone"},
			{Name: "matador"},
			{Name: "barum"},
			{Name: "debica", Display: "Dębica"},
			{Name: "sava"},
			{Name: "laufenn"},
			{Name: "milestone"},
			{Name: "riken"},
			{Name: "otani"},
			{Name: "apollo"},
		},
		Price: []string{
			"fiyat",
			"ucuz",
			"kaç para",
			"kaç tl",
			"indirim",
			"kampanya",
			"ücret",
			"taksit",
			"price",
			"cheap",
		},
		Comparison: []string{
			"karşılaştırma",
			"karşılaştır",
			"kıyasla",
			"hangisi",
			"farkı",
			"yoksa",
			"vs",
			"versus",
		},
		Question: []string{
			"nedir",
			"nasıl",
			"neden",
			"ne zaman",
			"ne kadar",
			"nerede",
			"nereden",
			"hangi",
			"kaç",
			"mıdır",
			"midir",
			"iyi mi",
			"what",
			"how",
			"why",
		},
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
