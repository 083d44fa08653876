package standings

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/catdraft/internal/models"
)

func standing(key string, rank, gapAbove, gapBelow float64) CategoryStanding {
	return CategoryStanding{
		Category: models.StatKey(key),
		Rank:     rank,
		GapAbove: gapAbove,
		GapBelow: gapBelow,
		Strategy: models.StrategyNeutral,
	}
}

func TestClassifyStrategies_TooEarlyIsNeutral(t *testing.T) {
	in := []CategoryStanding{
		standing("R", 1, 0, 5),
		standing("SB", 10, 9, 0),
	}
	in[0].Strategy = models.StrategyLock

	out := ClassifyStrategies(in, MinPicksForStrategy-1, 10, 6)
	for _, s := range out {
		assert.Equal(t, models.StrategyNeutral, s.Strategy)
	}
	assert.Equal(t, models.StrategyLock, in[0].Strategy, "input must not be modified")
}

func TestClassifyStrategies_Labels(t *testing.T) {
	tests := []struct {
		name         string
		standing     CategoryStanding
		playoffSpots int
		expected     models.Strategy
	}{
		{name: "lock with margin", standing: standing("R", 1, 0, 1.5), playoffSpots: 6, expected: models.StrategyLock},
		{name: "no lock without margin", standing: standing("R", 2, 0.2, 0.5), playoffSpots: 6, expected: models.StrategyNeutral},
		// forgiving: 6/10 = 0.6 -> punt gap 4.5, floor = last place
		{name: "forgiving punt at last", standing: standing("SB", 10, 5, 0), playoffSpots: 6, expected: models.StrategyPunt},
		{name: "forgiving no punt when gap small", standing: standing("SB", 10, 4, 0), playoffSpots: 6, expected: models.StrategyNeutral},
		{name: "forgiving no punt at ninth", standing: standing("SB", 9, 6, 1), playoffSpots: 6, expected: models.StrategyNeutral},
		{name: "forgiving target window wide", standing: standing("TB", 3, 1, 1), playoffSpots: 6, expected: models.StrategyTarget},
		{name: "forgiving target upper edge", standing: standing("TB", 8, 1, 1), playoffSpots: 6, expected: models.StrategyTarget},
		// strict: 4/10 = 0.4 -> punt gap 3.0, floor = ninth
		{name: "strict punt at ninth", standing: standing("SB", 9, 3, 1), playoffSpots: 4, expected: models.StrategyPunt},
		{name: "strict target narrow", standing: standing("TB", 3, 1, 1), playoffSpots: 4, expected: models.StrategyNeutral},
		{name: "strict target inside", standing: standing("TB", 4, 1, 1), playoffSpots: 4, expected: models.StrategyTarget},
		{name: "strict eighth is neutral", standing: standing("TB", 8, 1, 1), playoffSpots: 4, expected: models.StrategyNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ClassifyStrategies([]CategoryStanding{tt.standing}, 10, 10, tt.playoffSpots)
			assert.Equal(t, tt.expected, out[0].Strategy)
		})
	}
}

func TestClassifyStrategies_PuntCap(t *testing.T) {
	in := []CategoryStanding{
		standing("R", 9.5, 10, 0),
		standing("TB", 10, 10, 0),
		standing("RBI", 9, 10, 1),
		standing("SB", 9.5, 10, 0),
		standing("OBP", 1, 0, 3),
	}

	out := ClassifyStrategies(in, 12, 10, 4)

	punted := map[models.StatKey]bool{}
	for _, s := range out {
		if s.Strategy == models.StrategyPunt {
			punted[s.Category] = true
		}
	}
	assert.Len(t, punted, MaxPunts)
	assert.True(t, punted["TB"], "worst rank is kept")
	assert.True(t, punted["R"], "first of the tied next-worst ranks is kept")
	assert.Equal(t, models.StrategyNeutral, out[2].Strategy)
	assert.Equal(t, models.StrategyNeutral, out[3].Strategy)
	assert.Equal(t, models.StrategyLock, out[4].Strategy)
}

func TestClassifyStrategies_NeverMoreThanTwoPunts(t *testing.T) {
	for n := 0; n < 10; n++ {
		var in []CategoryStanding
		for i := 0; i <= n; i++ {
			in = append(in, standing(fmt.Sprintf("C%d", i), 10-float64(i%2)*0.5, 20, 0))
		}
		out := ClassifyStrategies(in, 20, 10, 5)

		punts := 0
		for _, s := range out {
			if s.Strategy == models.StrategyPunt {
				punts++
			}
		}
		assert.LessOrEqual(t, punts, MaxPunts)
	}
}

func TestStrategyMap(t *testing.T) {
	in := []CategoryStanding{standing("R", 1, 0, 0), standing("SB", 2, 0, 0)}
	in[1].Strategy = models.StrategyPunt

	m := StrategyMap(in)
	assert.Equal(t, models.StrategyNeutral, m["R"])
	assert.Equal(t, models.StrategyPunt, m["SB"])
}
