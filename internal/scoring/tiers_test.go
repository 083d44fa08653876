package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tierInputs(values ...float64) []TierInput {
	out := make([]TierInput, len(values))
	for i, v := range values {
		out[i] = TierInput{PlayerID: fmt.Sprintf("p%d", i), Value: v}
	}
	return out
}

func TestDetectTiers_Empty(t *testing.T) {
	assert.Nil(t, DetectTiers(nil))
}

func TestDetectTiers_Single(t *testing.T) {
	tiers := DetectTiers(tierInputs(3))
	require.Len(t, tiers, 1)
	assert.Equal(t, 1, tiers[0].Number)
	assert.Equal(t, 3.0, tiers[0].Top)
	assert.Equal(t, 3.0, tiers[0].Bottom)
}

func TestDetectTiers_SplitsOnLargeGap(t *testing.T) {
	in := tierInputs(4.6, 10, 9.6, 5, 9.8, 4.8)

	tiers := DetectTiers(in)
	require.Len(t, tiers, 2)

	assert.Len(t, tiers[0].Players, 3)
	assert.Equal(t, 10.0, tiers[0].Top)
	assert.Equal(t, 9.6, tiers[0].Bottom)
	assert.Len(t, tiers[1].Players, 3)
	assert.Equal(t, 5.0, tiers[1].Top)
	assert.Equal(t, 4.6, tiers[1].Bottom)

	assert.Equal(t, 4.6, in[0].Value, "input order is preserved")
}

func TestDetectTiers_EvenSpacingIsOneTier(t *testing.T) {
	var values []float64
	for i := 0; i < 20; i++ {
		values = append(values, 100-float64(i)*2)
	}
	assert.Len(t, DetectTiers(tierInputs(values...)), 1)
}

func TestDetectTiers_CappedAtMaxTiers(t *testing.T) {
	// 20 pairs: tight within a pair, a big drop between pairs
	var values []float64
	for g := 0; g < 20; g++ {
		top := 1000 - float64(g)*10
		values = append(values, top, top-0.1)
	}

	tiers := DetectTiers(tierInputs(values...))
	require.Len(t, tiers, MaxTiers)

	total := 0
	for i, tier := range tiers {
		assert.Equal(t, i+1, tier.Number)
		total += len(tier.Players)
		if i < MaxTiers-1 {
			assert.Len(t, tier.Players, 2)
		}
	}
	assert.Equal(t, len(values), total)
	assert.Len(t, tiers[MaxTiers-1].Players, len(values)-2*(MaxTiers-1))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 0.0, median(nil))
}
