package keywords

import "kwtaxonomy/internal/models"

// Summarize derives the summary view from grouped output without
// re-classifying. A record appearing in several groups counts once in the
// keyword and volume totals.
func Summarize(groups []models.Group) models.Summary {
	s := models.Summary{
		TotalGroups: len(groups),
		Groups:      make([]models.GroupSummary, 0, len(groups)),
	}

	seen := map[string]struct{}{}
	for _, g := range groups {
		s.Groups = append(s.Groups, models.GroupSummary{
			ID:            g.ID,
			Name:          g.Name,
			Count:         len(g.Keywords),
			Volume:        g.TotalVolume,
			SubgroupCount: len(g.Subgroups),
		})
		for _, r := range g.Keywords {
			if _, dup := seen[r.Keyword]; dup {
				continue
			}
			seen[r.Keyword] = struct{}{}
			s.TotalKeywords++
			s.TotalVolume += r.Volume()
		}
	}

	return s
}
