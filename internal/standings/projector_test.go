package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/catdraft/internal/models"
)

func projectionLeague(reg *models.CategoryRegistry) []ProjectionTeam {
	a := AggregateTeam("a", []models.Player{hitter("a1", 600, 0.360, 100), pitcher("a2", 180, 3.20, 190)}, nil, reg, DefaultBenchWeights())
	b := AggregateTeam("b", []models.Player{hitter("b1", 550, 0.330, 85), pitcher("b2", 160, 3.90, 170)}, nil, reg, DefaultBenchWeights())
	return []ProjectionTeam{
		{Totals: a, RemainingHitterSlots: 3, RemainingPitcherSlots: 1},
		{Totals: b, RemainingHitterSlots: 1, RemainingPitcherSlots: 1},
	}
}

func TestProjectStandings_EmptyPoolConservesTotals(t *testing.T) {
	reg := models.DefaultRegistry()
	teams := projectionLeague(reg)

	projected := ProjectStandings(teams, nil, reg, 2)
	require.Len(t, projected, 2)

	for i, p := range projected {
		assert.Equal(t, teams[i].Totals.TeamID, p.TeamID)
		assert.Equal(t, p.Current, p.Projected)
		for key, v := range teams[i].Totals.Values {
			assert.Equal(t, v, p.ProjectedValues[key])
		}
	}
}

func TestProjectStandings_NoRemainingSlotsConservesTotals(t *testing.T) {
	reg := models.DefaultRegistry()
	teams := projectionLeague(reg)
	for i := range teams {
		teams[i].RemainingHitterSlots = 0
		teams[i].RemainingPitcherSlots = 0
	}
	pool := []models.Player{hitter("fa", 600, 0.400, 120), pitcher("fp", 200, 2.00, 250)}

	projected := ProjectStandings(teams, pool, reg, 2)
	for _, p := range projected {
		assert.Equal(t, p.Current, p.Projected)
	}
}

func TestProjectStandings_DistributesBySlotShare(t *testing.T) {
	reg := models.DefaultRegistry()
	teams := projectionLeague(reg)

	// 4 hitter slots open league-wide, so the weakest hitter is cut from the pool
	pool := []models.Player{
		hitter("h1", 500, 0.350, 80),
		hitter("h2", 500, 0.350, 80),
		hitter("h3", 500, 0.350, 80),
		hitter("h4", 500, 0.350, 80),
		hitter("cut", 500, 0.100, 1),
	}

	projected := ProjectStandings(teams, pool, reg, 2)
	require.Len(t, projected, 2)

	// pool runs = 320; a gets 3/4, b gets 1/4
	assert.InDelta(t, 100+240.0, projected[0].Projected[models.StatRuns], 1e-9)
	assert.InDelta(t, 85+80.0, projected[1].Projected[models.StatRuns], 1e-9)

	// OBP recomputed from merged accumulators: (600*.36 + 1500*.35) / 2100
	assert.InDelta(t, (600*0.360+1500*0.350)/2100, projected[0].Projected[models.StatOBP], 1e-12)

	// pitching pool is empty, so pitching stays put
	assert.Equal(t, projected[0].Current[models.StatERA], projected[0].Projected[models.StatERA])
}

func TestProjectStandings_RanksProjectedTotals(t *testing.T) {
	reg := models.DefaultRegistry()
	teams := projectionLeague(reg)
	teams[0].RemainingHitterSlots = 0
	teams[1].RemainingHitterSlots = 5

	pool := []models.Player{hitter("h1", 600, 0.420, 130), hitter("h2", 600, 0.410, 120)}

	projected := ProjectStandings(teams, pool, reg, 2)
	assert.Equal(t, 1.0, projected[1].ProjectedRanks[models.StatRuns])
	assert.Equal(t, 2.0, projected[0].ProjectedRanks[models.StatRuns])
	assert.Greater(t, projected[1].ExpectedWins, 0.0)
	assert.ElementsMatch(t, []int{1, 2}, []int{projected[0].OverallRank, projected[1].OverallRank})
}
