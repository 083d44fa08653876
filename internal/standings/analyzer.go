package standings

import (
	"github.com/stitts-dev/catdraft/internal/models"
)

// CategoryStanding is one team's position in one category
type CategoryStanding struct {
	Category       models.StatKey  `json:"category"`
	Label          string          `json:"label"`
	MyTotal        float64         `json:"my_total"`
	Rank           float64         `json:"rank"`
	WinProbability float64         `json:"win_probability"`
	GapAbove       float64         `json:"gap_above"`
	GapBelow       float64         `json:"gap_below"`
	Strategy       models.Strategy `json:"strategy"`
}

// AnalyzeCategories computes rank, win probability and the gaps to the nearest
// opponents above and below for every category. Gaps are 0 when no opponent is
// strictly above (or below).
func AnalyzeCategories(
	myTotals map[models.StatKey]float64,
	otherTotals map[models.StatKey][]float64,
	categories []models.Category,
	numTeams int,
) []CategoryStanding {
	result := make([]CategoryStanding, 0, len(categories))

	for _, cat := range categories {
		mine := myTotals[cat.Key]
		others := SortedDescending(otherTotals[cat.Key])
		rank := Rank(mine, others)

		standing := CategoryStanding{
			Category:       cat.Key,
			Label:          cat.Label,
			MyTotal:        mine,
			Rank:           rank,
			WinProbability: WinProbability(rank, numTeams),
			Strategy:       models.StrategyNeutral,
		}

		// others is descending: the last value above mine is the closest one,
		// the first value below mine is the closest one
		for _, v := range others {
			if v > mine {
				standing.GapAbove = v - mine
				continue
			}
			if v < mine {
				standing.GapBelow = mine - v
				break
			}
		}

		result = append(result, standing)
	}

	return result
}

// OpponentTotals collects every other team's contribution totals per category,
// sorted descending
func OpponentTotals(teams []models.TeamTotals, myTeamID string, categories []models.Category) map[models.StatKey][]float64 {
	out := make(map[models.StatKey][]float64, len(categories))
	for _, cat := range categories {
		values := make([]float64, 0, len(teams))
		for _, team := range teams {
			if team.TeamID == myTeamID {
				continue
			}
			values = append(values, team.Values[cat.Key])
		}
		out[cat.Key] = SortedDescending(values)
	}
	return out
}
