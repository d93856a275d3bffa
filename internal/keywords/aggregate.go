package keywords

import (
	"cmp"
	"slices"

	"kwtaxonomy/internal/models"
)

// Aggregate computes volume totals and sorts the hierarchy for display.
// Members are ordered by search volume descending, subgroups by total volume
// descending (both stable), and top-level groups follow models.GroupOrder.
// The input groups are not modified.
func Aggregate(groups []models.Group) []models.Group {
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		agg := models.Group{
			ID:          g.ID,
			Name:        g.Name,
			Keywords:    sortMembers(g.Keywords),
			TotalVolume: sumVolume(g.Keywords),
		}
		if len(g.Subgroups) > 0 {
			agg.Subgroups = make([]models.Subgroup, 0, len(g.Subgroups))
			for _, sg := range g.Subgroups {
				agg.Subgroups = append(agg.Subgroups, models.Subgroup{
					ID:          sg.ID,
					Name:        sg.Name,
					Keywords:    sortMembers(sg.Keywords),
					TotalVolume: sumVolume(sg.Keywords),
				})
			}
			slices.SortStableFunc(agg.Subgroups, func(a, b models.Subgroup) int {
				return cmp.Compare(b.TotalVolume, a.TotalVolume)
			})
		}
		out = append(out, agg)
	}

	slices.SortStableFunc(out, func(a, b models.Group) int {
		return cmp.Compare(groupRank(a.ID), groupRank(b.ID))
	})
	return out
}

func sortMembers(members []models.KeywordRecord) []models.KeywordRecord {
	sorted := slices.Clone(members)
	if sorted == nil {
		sorted = []models.KeywordRecord{}
	}
	slices.SortStableFunc(sorted, func(a, b models.KeywordRecord) int {
		return cmp.Compare(b.Volume(), a.Volume())
	})
	return sorted
}

func sumVolume(members []models.KeywordRecord) int64 {
	var total int64
	for _, r := range members {
		total += r.Volume()
	}
	return total
}

// groupRank places unknown group ids after the known ones.
func groupRank(id string) int {
	if i := slices.Index(models.GroupOrder, id); i >= 0 {
		return i
	}
	return len(models.GroupOrder)
}
