package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/catdraft/internal/models"
)

func runsOnly() []models.Category {
	return []models.Category{{Key: models.StatRuns, Label: "Runs", PlayerType: models.PlayerTypeHitter}}
}

func TestAnalyzeCategories_RunsExample(t *testing.T) {
	my := map[models.StatKey]float64{models.StatRuns: 500}
	others := map[models.StatKey][]float64{
		models.StatRuns: {430, 520, 480, 470, 460, 455, 450, 440, 510},
	}

	result := AnalyzeCategories(my, others, runsOnly(), 10)
	require.Len(t, result, 1)

	s := result[0]
	assert.Equal(t, 3.0, s.Rank)
	assert.InDelta(t, 7.0/9.0, s.WinProbability, 1e-9)
	assert.Equal(t, 10.0, s.GapAbove, "nearest team above is 510")
	assert.Equal(t, 20.0, s.GapBelow, "nearest team below is 480")
	assert.Equal(t, models.StrategyNeutral, s.Strategy)
}

func TestAnalyzeCategories_EdgeGapsAreZero(t *testing.T) {
	others := map[models.StatKey][]float64{models.StatRuns: {400, 300}}

	first := AnalyzeCategories(map[models.StatKey]float64{models.StatRuns: 500}, others, runsOnly(), 3)
	assert.Equal(t, 0.0, first[0].GapAbove)
	assert.Equal(t, 100.0, first[0].GapBelow)

	last := AnalyzeCategories(map[models.StatKey]float64{models.StatRuns: 100}, others, runsOnly(), 3)
	assert.Equal(t, 200.0, last[0].GapAbove)
	assert.Equal(t, 0.0, last[0].GapBelow)
}

func TestAnalyzeCategories_TiedOpponentsAreNotGaps(t *testing.T) {
	others := map[models.StatKey][]float64{models.StatRuns: {510, 500, 490}}
	result := AnalyzeCategories(map[models.StatKey]float64{models.StatRuns: 500}, others, runsOnly(), 4)

	assert.Equal(t, 2.5, result[0].Rank)
	assert.Equal(t, 10.0, result[0].GapAbove)
	assert.Equal(t, 10.0, result[0].GapBelow)
}

func TestAnalyzeCategories_Idempotent(t *testing.T) {
	reg := models.DefaultRegistry()
	my := map[models.StatKey]float64{}
	others := map[models.StatKey][]float64{}
	for i, key := range reg.Keys() {
		my[key] = float64(i)
		others[key] = []float64{float64(i) + 1, float64(i) - 1, float64(i)}
	}

	first := AnalyzeCategories(my, others, reg.All(), 4)
	second := AnalyzeCategories(my, others, reg.All(), 4)
	assert.Equal(t, first, second)
	assert.Equal(t, []float64{1, -1, 0}, others[models.StatRuns], "input must not be reordered")
}

func TestOpponentTotals_ExcludesMyTeam(t *testing.T) {
	reg := models.DefaultRegistry()
	teams := []models.TeamTotals{
		{TeamID: "me", Values: map[models.StatKey]float64{models.StatRuns: 9}},
		{TeamID: "a", Values: map[models.StatKey]float64{models.StatRuns: 1}},
		{TeamID: "b", Values: map[models.StatKey]float64{models.StatRuns: 5}},
	}

	out := OpponentTotals(teams, "me", reg.All())
	assert.Equal(t, []float64{5, 1}, out[models.StatRuns])
	assert.Equal(t, []float64{0, 0}, out[models.StatERA])
}
