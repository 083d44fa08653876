package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, 10, reg.Len())
	assert.Equal(t, []StatKey{StatRuns, StatTotalBases, StatRBI, StatSteals, StatOBP, StatStrikeouts, StatQS, StatERA, StatWHIP, StatSVHD}, reg.Keys())
	assert.Len(t, reg.ForType(PlayerTypeHitter), 5)
	assert.Len(t, reg.ForType(PlayerTypePitcher), 5)

	era, ok := reg.Get(StatERA)
	require.True(t, ok)
	assert.True(t, era.Inverted)
	assert.True(t, era.IsRateStat)
	assert.Equal(t, StatIP, era.WeightStat)

	_, ok = reg.Get("HR")
	assert.False(t, ok)
}

func TestNewCategoryRegistry_Validation(t *testing.T) {
	tests := []struct {
		name string
		cats []Category
	}{
		{"empty key", []Category{{PlayerType: PlayerTypeHitter}}},
		{"duplicate", []Category{{Key: "R", PlayerType: PlayerTypeHitter}, {Key: "R", PlayerType: PlayerTypeHitter}}},
		{"bad type", []Category{{Key: "R", PlayerType: "catcher"}}},
		{"rate without weight", []Category{{Key: "AVG", PlayerType: PlayerTypeHitter, IsRateStat: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCategoryRegistry(tt.cats)
			assert.ErrorIs(t, err, ErrInvalidCategory)
		})
	}
}

func TestCategoryRegistry_LabelDefaultsToKey(t *testing.T) {
	reg, err := NewCategoryRegistry([]Category{{Key: "HR", PlayerType: PlayerTypeHitter}})
	require.NoError(t, err)
	cat, _ := reg.Get("HR")
	assert.Equal(t, "HR", cat.Label)
}

func TestCategoryRegistry_AllIsCopy(t *testing.T) {
	reg := DefaultRegistry()
	all := reg.All()
	all[0].Key = "XX"
	assert.Equal(t, StatRuns, reg.All()[0].Key)
}

func TestLeagueConfig_Registry(t *testing.T) {
	reg, err := LeagueConfig{}.Registry()
	require.NoError(t, err)
	assert.Equal(t, 10, reg.Len())

	reg, err = LeagueConfig{Categories: []Category{{Key: "HR", PlayerType: PlayerTypeHitter}}}.Registry()
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	_, err = LeagueConfig{Categories: []Category{{Key: ""}}}.Registry()
	assert.Error(t, err)
}
