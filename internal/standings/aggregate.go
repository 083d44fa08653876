package standings

import (
	"math"
	"sort"

	"github.com/stitts-dev/catdraft/internal/models"
)

// BenchWeights is the share of a bench player's projection credited to the team.
// Bench pitchers count for more because they get streamed into matchups.
type BenchWeights struct {
	Hitter  float64 `json:"hitter"`
	Pitcher float64 `json:"pitcher"`
}

func DefaultBenchWeights() BenchWeights {
	return BenchWeights{Hitter: 0.20, Pitcher: 0.45}
}

func (b BenchWeights) For(t models.PlayerType) float64 {
	if t == models.PlayerTypePitcher {
		return b.Pitcher
	}
	return b.Hitter
}

// AggregateTeam rolls starters (full weight) and bench players (bench weight)
// into category totals
func AggregateTeam(teamID string, starters, bench []models.Player, reg *models.CategoryRegistry, bw BenchWeights) models.TeamTotals {
	totals := models.NewTeamTotals(teamID)
	for _, p := range starters {
		totals.AddPlayer(p, 1.0, reg)
	}
	for _, p := range bench {
		totals.AddPlayer(p, bw.For(p.Type), reg)
	}
	return totals
}

// TeamStanding is a team's stat line ranked against the whole league
type TeamStanding struct {
	TeamID       string                     `json:"team_id"`
	Stats        map[models.StatKey]float64 `json:"stats"`
	Ranks        map[models.StatKey]float64 `json:"ranks"`
	ExpectedWins float64                    `json:"expected_wins"`
	OverallRank  int                        `json:"overall_rank"`
}

// RankTeams ranks every team per category on raw stat values, lower being
// better for inverted categories, and sums expected weekly category wins
func RankTeams(teams []models.TeamTotals, reg *models.CategoryRegistry, numTeams int) []TeamStanding {
	if numTeams <= 0 {
		numTeams = len(teams)
	}

	out := make([]TeamStanding, len(teams))
	for i, t := range teams {
		out[i] = TeamStanding{
			TeamID: t.TeamID,
			Stats:  t.StatLine(reg),
			Ranks:  make(map[models.StatKey]float64, reg.Len()),
		}
	}

	for _, cat := range reg.All() {
		oriented := make([]float64, len(teams))
		for i, t := range teams {
			oriented[i] = orientedValue(t, cat)
		}
		for i := range teams {
			others := make([]float64, 0, len(teams)-1)
			for j, v := range oriented {
				if j != i {
					others = append(others, v)
				}
			}
			rank := Rank(oriented[i], others)
			out[i].Ranks[cat.Key] = rank
			out[i].ExpectedWins += WinProbability(rank, numTeams)
		}
	}

	assignOverallRanks(out)
	return out
}

// orientedValue maps a raw category value so that higher is always better. A
// rate category with no accumulated weight ranks below everything.
func orientedValue(t models.TeamTotals, cat models.Category) float64 {
	if cat.IsRateStat && t.Weights[cat.Key] == 0 {
		return math.Inf(-1)
	}
	v := t.Stat(cat)
	if cat.Inverted {
		return -v
	}
	return v
}

func assignOverallRanks(standings []TeamStanding) {
	order := make([]int, len(standings))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return standings[order[a]].ExpectedWins > standings[order[b]].ExpectedWins
	})
	for pos, idx := range order {
		standings[idx].OverallRank = pos + 1
	}
}
