package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/catdraft/internal/draft"
	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/pkg/database"
	"github.com/stitts-dev/catdraft/pkg/utils"
)

func snapshot(pick int) *draft.Snapshot {
	return &draft.Snapshot{
		League: models.LeagueConfig{
			NumTeams:     2,
			PlayoffSpots: 1,
			Rounds:       2,
			RosterSlots:  []models.RosterSlotSpec{{Name: "OF", Capacity: 1}, {Name: "BE", Capacity: 1}},
		},
		MyTeamID: "me",
		Teams: []draft.TeamRoster{
			{TeamID: "me", Name: "Mine"},
			{TeamID: "opp"},
		},
		Available: []models.Player{{
			ID:        "of1",
			Name:      "Outfielder",
			Type:      models.PlayerTypeHitter,
			Positions: []string{"OF"},
			Values:    map[models.StatKey]float64{models.StatRuns: 1.5},
			ADP:       3,
		}},
		PickIndex: pick,
	}
}

func exerciseStore(t *testing.T, s DraftStateStore) {
	ctx := context.Background()

	_, err := s.Get(ctx, 2026)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, s.Save(ctx, 2026, snapshot(0)))
	got, err := s.Get(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, snapshot(0), got)

	require.NoError(t, s.Save(ctx, 2026, snapshot(3)))
	got, err = s.Get(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PickIndex, "save overwrites the season")

	_, err = s.Get(ctx, 2025)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestMemoryDraftStateStore(t *testing.T) {
	exerciseStore(t, NewMemoryDraftStateStore())
}

func TestMemoryDraftStateStore_Isolated(t *testing.T) {
	s := NewMemoryDraftStateStore()
	snap := snapshot(0)
	require.NoError(t, s.Save(context.Background(), 2026, snap))

	snap.Available[0].Name = "changed"
	got, err := s.Get(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, "Outfielder", got.Available[0].Name)
}

func TestGormDraftStateStore(t *testing.T) {
	db, err := database.NewConnection("sqlite", filepath.Join(t.TempDir(), "draft.db"), false)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer db.Close()
	require.NoError(t, db.Migrate(&DraftState{}))

	exerciseStore(t, NewGormDraftStateStore(db.DB))
}
