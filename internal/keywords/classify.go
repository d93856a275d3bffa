package keywords

import (
	"strings"
	"unicode"

	"kwtaxonomy/internal/models"
)

// Labels are the independent matcher outcomes for one keyword.
type Labels struct {
	Brand  string
	Size   string
	Intent Intent
}

// Categorized reports whether any matcher fired.
func (l Labels) Categorized() bool {
	return l.Brand != "" || l.Size != "" || l.Intent != IntentNone
}

// Classifier runs the matchers over records and builds the group hierarchy.
// It holds only compiled lexicons and is safe for concurrent use.
type Classifier struct {
	brands  *BrandMatcher
	sizes   SizeMatcher
	intents *IntentMatcher
}

// NewClassifier compiles the lexicons into matchers.
func NewClassifier(lex Lexicons) *Classifier {
	return &Classifier{
		brands:  NewBrandMatcher(lex.Brands),
		intents: NewIntentMatcher(lex),
	}
}

// Label evaluates the brand, size and intent matchers on a keyword.
func (c *Classifier) Label(keyword string) Labels {
	key := Normalize(keyword)
	var l Labels
	l.Brand, _ = c.brands.matchNormalized(key)
	l.Size, _ = c.sizes.Match(keyword)
	l.Intent, _ = c.intents.matchNormalized(key)
	return l
}

// Group places every record into the groups its labels select. Brand, size
// and intent membership are orthogonal, so a record may appear in up to three
// top-level groups; records without any label go to Other. Members and
// subgroups keep first-seen order and empty groups are omitted.
func (c *Classifier) Group(records []models.KeywordRecord) []models.Group {
	brands := newBucketSet()
	sizes := newBucketSet()
	intents := map[Intent][]models.KeywordRecord{}
	var other []models.KeywordRecord

	for _, r := range records {
		l := c.Label(r.Keyword)
		if l.Brand != "" {
			brands.add(l.Brand, r)
		}
		if l.Size != "" {
			sizes.add(l.Size, r)
		}
		if l.Intent != IntentNone {
			intents[l.Intent] = append(intents[l.Intent], r)
		}
		if !l.Categorized() {
			other = append(other, r)
		}
	}

	var groups []models.Group
	if g, ok := brands.group(models.GroupBrands, "brand"); ok {
		groups = append(groups, g)
	}
	if g, ok := sizes.group(models.GroupSizes, "size"); ok {
		groups = append(groups, g)
	}
	for _, it := range []Intent{IntentPrice, IntentComparison, IntentQuestion} {
		if members := intents[it]; len(members) > 0 {
			groups = append(groups, flatGroup(string(it), members))
		}
	}
	if len(other) > 0 {
		groups = append(groups, flatGroup(models.GroupOther, other))
	}

	return groups
}

func flatGroup(id string, members []models.KeywordRecord) models.Group {
	return models.Group{
		ID:       id,
		Name:     models.GroupNames[id],
		Keywords: members,
	}
}

// bucketSet collects records per label, remembering first-seen label order.
type bucketSet struct {
	order   []string
	members map[string][]models.KeywordRecord
	all     []models.KeywordRecord
}

func newBucketSet() *bucketSet {
	return &bucketSet{members: map[string][]models.KeywordRecord{}}
}

func (b *bucketSet) add(label string, r models.KeywordRecord) {
	if _, ok := b.members[label]; !ok {
		b.order = append(b.order, label)
	}
	b.members[label] = append(b.members[label], r)
	b.all = append(b.all, r)
}

func (b *bucketSet) group(id, prefix string) (models.Group, bool) {
	if len(b.all) == 0 {
		return models.Group{}, false
	}
	g := flatGroup(id, b.all)
	for _, label := range b.order {
		g.Subgroups = append(g.Subgroups, models.Subgroup{
			ID:       prefix + "-" + slug(label),
			Name:     label,
			Keywords: b.members[label],
		})
	}
	return g, true
}

// slug lowercases a label and joins its letter/digit runs with hyphens.
func slug(label string) string {
	fields := strings.FieldsFunc(Normalize(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}
