package models

// Top-level group identifiers, in display order.
const (
	GroupBrands     = "brands"
	GroupSizes      = "sizes"
	GroupPrice      = "price"
	GroupComparison = "comparison"
	GroupQuestion   = "question"
	GroupOther      = "other"
)

// GroupOrder is the fixed semantic order of top-level groups.
var GroupOrder = []string{
	GroupBrands,
	GroupSizes,
	GroupPrice,
	GroupComparison,
	GroupQuestion,
	GroupOther,
}

// GroupNames maps group ids to display names.
var GroupNames = map[string]string{
	GroupBrands:     "Brands",
	GroupSizes:      "Sizes",
	GroupPrice:      "Price",
	GroupComparison: "Comparison",
	GroupQuestion:   "Question",
	GroupOther:      "Other",
}

// Group is a named bucket of keyword records.
// Only Brands and Sizes carry subgroups.
type Group struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Keywords    []KeywordRecord `json:"keywords"`
	Subgroups   []Subgroup      `json:"subgroups,omitempty"`
	TotalVolume int64           `json:"total_volume"`
}

// Subgroup is a named partition within a Group, e.g. one brand or one size.
type Subgroup struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Keywords    []KeywordRecord `json:"keywords"`
	TotalVolume int64           `json:"total_volume"`
}

// GroupSummary is the per-group line of a Summary.
type GroupSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Count         int    `json:"count"`
	Volume        int64  `json:"volume"`
	SubgroupCount int    `json:"subgroup_count"`
}

// Summary is a derived view over grouped output.
type Summary struct {
	TotalGroups   int            `json:"total_groups"`
	TotalKeywords int            `json:"total_keywords"`
	TotalVolume   int64          `json:"total_volume"`
	Groups        []GroupSummary `json:"groups"`
}
