package standings

import (
	"sort"

	"github.com/stitts-dev/catdraft/internal/models"
)

// ProjectionTeam is a team's current totals and its open starting slots
type ProjectionTeam struct {
	Totals                models.TeamTotals
	RemainingHitterSlots  int
	RemainingPitcherSlots int
}

// ProjectedStanding is the end-of-draft outlook for one team
type ProjectedStanding struct {
	TeamID          string                     `json:"team_id"`
	Current         map[models.StatKey]float64 `json:"current"`
	Projected       map[models.StatKey]float64 `json:"projected"`
	ProjectedValues map[models.StatKey]float64 `json:"projected_values"`
	ProjectedRanks  map[models.StatKey]float64 `json:"projected_ranks"`
	ExpectedWins    float64                    `json:"expected_wins"`
	OverallRank     int                        `json:"overall_rank"`
}

// ProjectStandings extrapolates final totals by handing the best of the
// undrafted pool to teams in proportion to their open starting slots, split by
// player type. Rate stats are recomputed from the merged accumulators.
func ProjectStandings(teams []ProjectionTeam, pool []models.Player, reg *models.CategoryRegistry, numTeams int) []ProjectedStanding {
	totalHitterSlots, totalPitcherSlots := 0, 0
	for _, t := range teams {
		totalHitterSlots += t.RemainingHitterSlots
		totalPitcherSlots += t.RemainingPitcherSlots
	}

	var hitters, pitchers []models.Player
	for _, p := range pool {
		if p.IsPitcher() {
			pitchers = append(pitchers, p)
		} else {
			hitters = append(hitters, p)
		}
	}
	hitterPool := AggregateTeam("hitter-pool", topByTypeValue(hitters, totalHitterSlots, reg), nil, reg, BenchWeights{})
	pitcherPool := AggregateTeam("pitcher-pool", topByTypeValue(pitchers, totalPitcherSlots, reg), nil, reg, BenchWeights{})

	projected := make([]models.TeamTotals, len(teams))
	for i, t := range teams {
		p := t.Totals.Clone()
		if totalHitterSlots > 0 && t.RemainingHitterSlots > 0 {
			p.AddScaled(hitterPool, float64(t.RemainingHitterSlots)/float64(totalHitterSlots))
		}
		if totalPitcherSlots > 0 && t.RemainingPitcherSlots > 0 {
			p.AddScaled(pitcherPool, float64(t.RemainingPitcherSlots)/float64(totalPitcherSlots))
		}
		projected[i] = p
	}

	ranked := RankTeams(projected, reg, numTeams)

	out := make([]ProjectedStanding, len(teams))
	for i, t := range teams {
		out[i] = ProjectedStanding{
			TeamID:          t.Totals.TeamID,
			Current:         t.Totals.StatLine(reg),
			Projected:       ranked[i].Stats,
			ProjectedValues: projected[i].Values,
			ProjectedRanks:  ranked[i].Ranks,
			ExpectedWins:    ranked[i].ExpectedWins,
			OverallRank:     ranked[i].OverallRank,
		}
	}
	return out
}

func topByTypeValue(players []models.Player, limit int, reg *models.CategoryRegistry) []models.Player {
	if limit <= 0 || len(players) == 0 {
		return nil
	}
	sorted := make([]models.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TypeValue(reg) > sorted[j].TypeValue(reg)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
