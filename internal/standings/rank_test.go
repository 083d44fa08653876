package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		others   []float64
		expected float64
	}{
		{name: "first", value: 10, others: []float64{9, 8, 7}, expected: 1},
		{name: "last", value: 1, others: []float64{9, 8, 7}, expected: 4},
		{name: "one tie shares the position", value: 8, others: []float64{9, 8, 7}, expected: 2.5},
		{name: "full tie", value: 5, others: []float64{5, 5, 5}, expected: 2.5},
		{name: "no opponents", value: 5, others: nil, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Rank(tt.value, tt.others))
		})
	}
}

func TestWinProbability_Bounds(t *testing.T) {
	for numTeams := 2; numTeams <= 16; numTeams++ {
		assert.Equal(t, 1.0, WinProbability(1, numTeams))
		assert.Equal(t, 0.0, WinProbability(float64(numTeams), numTeams))

		prev := 1.0
		for r := 1.0; r <= float64(numTeams); r += 0.5 {
			wp := WinProbability(r, numTeams)
			assert.GreaterOrEqual(t, wp, 0.0)
			assert.LessOrEqual(t, wp, 1.0)
			assert.LessOrEqual(t, wp, prev, "win probability must not increase with rank")
			prev = wp
		}
	}
}

func TestWinProbability_FullTieIsCoinFlip(t *testing.T) {
	numTeams := 10
	rank := Rank(3, []float64{3, 3, 3, 3, 3, 3, 3, 3, 3})
	assert.Equal(t, float64(numTeams+1)/2, rank)
	assert.InDelta(t, 0.5, WinProbability(rank, numTeams), 1e-12)
}

func TestWinProbability_DegenerateLeague(t *testing.T) {
	assert.Equal(t, 0.5, WinProbability(1, 1))
	assert.Equal(t, 0.5, WinProbability(1, 0))
}

func TestSortedDescending_DoesNotMutate(t *testing.T) {
	in := []float64{1, 3, 2}
	out := SortedDescending(in)
	assert.Equal(t, []float64{3, 2, 1}, out)
	assert.Equal(t, []float64{1, 3, 2}, in)
}
