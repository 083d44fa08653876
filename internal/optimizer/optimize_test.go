package optimizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/catdraft/internal/models"
)

func hitter(id string, positions ...string) models.Player {
	return models.Player{ID: id, Name: id, Type: models.PlayerTypeHitter, Positions: positions}
}

func starter(id string) models.Player {
	return models.Player{
		ID:     id,
		Name:   id,
		Type:   models.PlayerTypePitcher,
		Values: map[models.StatKey]float64{models.StatQS: 0.4},
	}
}

func reliever(id string) models.Player {
	return models.Player{
		ID:     id,
		Name:   id,
		Type:   models.PlayerTypePitcher,
		Values: map[models.StatKey]float64{models.StatSVHD: 0.9},
	}
}

func TestEligibleSlots(t *testing.T) {
	slots := DefaultRosterSlots()

	tests := []struct {
		name     string
		player   models.Player
		expected []SlotName
	}{
		{name: "catcher", player: hitter("c", "C"), expected: []SlotName{SlotCatcher, SlotUtility, SlotBench}},
		{name: "left field maps to OF", player: hitter("lf", "LF"), expected: []SlotName{SlotOutfield, SlotUtility, SlotBench}},
		{name: "multi position", player: hitter("m", "2B", "SS"), expected: []SlotName{SlotSecondBase, SlotShortstop, SlotUtility, SlotBench}},
		{name: "designated hitter", player: hitter("dh", "DH"), expected: []SlotName{SlotUtility, SlotBench}},
		{name: "no positions", player: hitter("x"), expected: []SlotName{SlotUtility, SlotBench}},
		{name: "starter by role", player: starter("sp"), expected: []SlotName{SlotStarter, SlotPitcherFlex, SlotBench}},
		{name: "reliever by role", player: reliever("rp"), expected: []SlotName{SlotReliever, SlotPitcherFlex, SlotBench}},
		{name: "two way", player: hitter("twp", "TWP"), expected: []SlotName{SlotStarter, SlotUtility, SlotPitcherFlex, SlotBench}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EligibleSlots(tt.player, slots))
		})
	}
}

func TestEligibleSlots_OnlyLayoutSlots(t *testing.T) {
	slots := []RosterSlot{{Name: SlotOutfield, Capacity: 2}, {Name: SlotBench, Capacity: 1}}
	assert.Equal(t, []SlotName{SlotBench}, EligibleSlots(hitter("c", "C"), slots))
}

func TestOptimize_ScarcePlayersFirst(t *testing.T) {
	slots := []RosterSlot{{Name: SlotCatcher, Capacity: 1}, {Name: SlotFirstBase, Capacity: 1}}

	flexible := hitter("flex", "C", "1B")
	catcherOnly := hitter("conly", "C")

	res := Optimize([]models.Player{flexible, catcherOnly}, slots)
	require.Empty(t, res.Unassigned)

	s, ok := res.SlotFor("conly")
	require.True(t, ok)
	assert.Equal(t, SlotCatcher, s)

	s, ok = res.SlotFor("flex")
	require.True(t, ok)
	assert.Equal(t, SlotFirstBase, s)
}

func TestOptimize_CapacityAndConservation(t *testing.T) {
	slots := DefaultRosterSlots()

	var players []models.Player
	for i := 0; i < 12; i++ {
		players = append(players, hitter(fmt.Sprintf("ss%d", i), "SS"))
	}

	res := Optimize(players, slots)

	// SS 1 + UTIL 2 + BE 8 = 11 places for shortstops
	assert.Len(t, res.Assignments, 11)
	assert.Len(t, res.Unassigned, 1)
	assert.Equal(t, len(players), len(res.Assignments)+len(res.Unassigned))
	assert.Len(t, res.Starters, 3)
	assert.Len(t, res.Bench, 8)

	for name, left := range res.Remaining {
		assert.GreaterOrEqual(t, left, 0, "slot %s", name)
	}
	assert.Equal(t, 0, res.Remaining[SlotShortstop])
	assert.Equal(t, 0, res.Remaining[SlotUtility])
	assert.Equal(t, 0, res.Remaining[SlotBench])
	assert.Equal(t, 1, res.Remaining[SlotCatcher])
}

func TestOptimize_Empty(t *testing.T) {
	res := Optimize(nil, DefaultRosterSlots())

	assert.Empty(t, res.Assignments)
	assert.Equal(t, 10, res.RemainingStarting(models.PlayerTypeHitter))
	assert.Equal(t, 7, res.RemainingStarting(models.PlayerTypePitcher))
}

func TestResult_StartingNeedAndAdd(t *testing.T) {
	slots := []RosterSlot{
		{Name: SlotStarter, Capacity: 1},
		{Name: SlotPitcherFlex, Capacity: 1},
		{Name: SlotBench, Capacity: 1},
	}
	res := Optimize([]models.Player{starter("a"), starter("b")}, slots)

	assert.False(t, res.HasStartingNeed(starter("c")))
	assert.True(t, res.CanAdd(starter("c")), "bench is still open")
	assert.Equal(t, 0, res.RemainingStarting(models.PlayerTypePitcher))

	slot, ok := res.Add(starter("c"))
	require.True(t, ok)
	assert.Equal(t, SlotBench, slot)
	assert.Len(t, res.Bench, 1)

	assert.False(t, res.CanAdd(reliever("d")))
	_, ok = res.Add(reliever("d"))
	assert.False(t, ok)
	assert.Len(t, res.Assignments, 3)
}

func TestParseRosterSlots(t *testing.T) {
	slots, err := ParseRosterSlots("C:1, 1B:1,of:3,BE:8")
	require.NoError(t, err)
	assert.Equal(t, []RosterSlot{
		{Name: SlotCatcher, Capacity: 1},
		{Name: SlotFirstBase, Capacity: 1},
		{Name: SlotOutfield, Capacity: 3},
		{Name: SlotBench, Capacity: 8},
	}, slots)

	bad := []string{"", "C", "C:x", "XX:1", "C:1,C:2", "C:-1"}
	for _, in := range bad {
		_, err := ParseRosterSlots(in)
		assert.ErrorIs(t, err, ErrInvalidRosterSlots, "input %q", in)
	}
}

func TestFromSpecs(t *testing.T) {
	slots, err := FromSpecs(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRosterSlots(), slots)

	slots, err = FromSpecs([]models.RosterSlotSpec{{Name: "util", Capacity: 2}})
	require.NoError(t, err)
	assert.Equal(t, []RosterSlot{{Name: SlotUtility, Capacity: 2}}, slots)

	_, err = FromSpecs([]models.RosterSlotSpec{{Name: "DH", Capacity: 1}})
	assert.ErrorIs(t, err, ErrInvalidRosterSlots)
}

func TestStartingSlots(t *testing.T) {
	slots := DefaultRosterSlots()
	assert.Equal(t, 10, StartingSlots(slots, models.PlayerTypeHitter))
	assert.Equal(t, 7, StartingSlots(slots, models.PlayerTypePitcher))
}
