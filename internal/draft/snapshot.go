package draft

import (
	"errors"
	"fmt"

	"github.com/stitts-dev/catdraft/internal/models"
)

var ErrInvalidSnapshot = errors.New("invalid draft snapshot")

// TeamRoster is one team's drafted players. Snapshot.Teams is in draft order.
type TeamRoster struct {
	TeamID  string          `json:"team_id"`
	Name    string          `json:"name,omitempty"`
	Players []models.Player `json:"players"`
}

// Snapshot is the full draft state an evaluation runs against. Nothing in it
// is mutated by the engine.
type Snapshot struct {
	League    models.LeagueConfig `json:"league"`
	MyTeamID  string              `json:"my_team_id"`
	Teams     []TeamRoster        `json:"teams"`
	Available []models.Player     `json:"available"`
	// PickIndex is the 0-based overall pick about to be made
	PickIndex int `json:"pick_index"`
}

// Validate checks the snapshot is internally consistent
func (s *Snapshot) Validate() error {
	if s.League.NumTeams <= 0 {
		return fmt.Errorf("%w: num_teams must be positive", ErrInvalidSnapshot)
	}
	if s.League.PlayoffSpots < 0 || s.League.PlayoffSpots > s.League.NumTeams {
		return fmt.Errorf("%w: playoff_spots must be between 0 and num_teams", ErrInvalidSnapshot)
	}
	if s.League.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be positive", ErrInvalidSnapshot)
	}
	if len(s.Teams) != s.League.NumTeams {
		return fmt.Errorf("%w: got %d teams for a %d-team league", ErrInvalidSnapshot, len(s.Teams), s.League.NumTeams)
	}
	if s.PickIndex < 0 {
		return fmt.Errorf("%w: pick_index must not be negative", ErrInvalidSnapshot)
	}

	seenTeams := make(map[string]bool, len(s.Teams))
	drafted := make(map[string]string)
	for _, t := range s.Teams {
		if t.TeamID == "" {
			return fmt.Errorf("%w: team without id", ErrInvalidSnapshot)
		}
		if seenTeams[t.TeamID] {
			return fmt.Errorf("%w: duplicate team %q", ErrInvalidSnapshot, t.TeamID)
		}
		seenTeams[t.TeamID] = true
		for _, p := range t.Players {
			if err := validatePlayer(p); err != nil {
				return err
			}
			if owner, ok := drafted[p.ID]; ok {
				return fmt.Errorf("%w: player %q on both %q and %q", ErrInvalidSnapshot, p.ID, owner, t.TeamID)
			}
			drafted[p.ID] = t.TeamID
		}
	}
	if !seenTeams[s.MyTeamID] {
		return fmt.Errorf("%w: my_team_id %q is not in teams", ErrInvalidSnapshot, s.MyTeamID)
	}

	pool := make(map[string]bool, len(s.Available))
	for _, p := range s.Available {
		if err := validatePlayer(p); err != nil {
			return err
		}
		if owner, ok := drafted[p.ID]; ok {
			return fmt.Errorf("%w: available player %q is already on %q", ErrInvalidSnapshot, p.ID, owner)
		}
		if pool[p.ID] {
			return fmt.Errorf("%w: player %q listed twice in the pool", ErrInvalidSnapshot, p.ID)
		}
		pool[p.ID] = true
	}
	return nil
}

func validatePlayer(p models.Player) error {
	if p.ID == "" {
		return fmt.Errorf("%w: player without id", ErrInvalidSnapshot)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: player %q has unknown type %q", ErrInvalidSnapshot, p.ID, p.Type)
	}
	return nil
}

// MySlot is my team's 0-based position in the draft order
func (s *Snapshot) MySlot() int {
	for i, t := range s.Teams {
		if t.TeamID == s.MyTeamID {
			return i
		}
	}
	return -1
}

// MyRoster returns my drafted players
func (s *Snapshot) MyRoster() []models.Player {
	if i := s.MySlot(); i >= 0 {
		return s.Teams[i].Players
	}
	return nil
}

// FindAvailable looks a player up in the available pool
func (s *Snapshot) FindAvailable(playerID string) (models.Player, bool) {
	for _, p := range s.Available {
		if p.ID == playerID {
			return p, true
		}
	}
	return models.Player{}, false
}

// RecordPick moves a player from the pool onto the team on the clock and
// advances the pick. It returns the team that made the pick.
func (s *Snapshot) RecordPick(playerID string) (string, error) {
	if s.PickIndex >= s.League.NumTeams*s.League.Rounds {
		return "", fmt.Errorf("%w: draft is complete", ErrInvalidSnapshot)
	}
	idx := -1
	for i, p := range s.Available {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: player %q is not available", ErrInvalidSnapshot, playerID)
	}

	team := &s.Teams[SnakeTeam(s.PickIndex, s.League.NumTeams)]
	team.Players = append(team.Players, s.Available[idx])
	s.Available = append(s.Available[:idx:idx], s.Available[idx+1:]...)
	s.PickIndex++
	return team.TeamID, nil
}
