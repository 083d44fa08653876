package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PlayerType discriminates hitters from pitchers
type PlayerType string

const (
	PlayerTypeHitter  PlayerType = "hitter"
	PlayerTypePitcher PlayerType = "pitcher"
)

func (t PlayerType) Valid() bool {
	switch t {
	case PlayerTypeHitter, PlayerTypePitcher:
		return true
	}
	return false
}

func (t *PlayerType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	pt := PlayerType(s)
	if !pt.Valid() {
		return fmt.Errorf("unknown player type %q", s)
	}
	*t = pt
	return nil
}

// Player is a read-only projection snapshot for one draft session
type Player struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Team      string     `json:"team,omitempty"`
	Type      PlayerType `json:"player_type"`
	Positions []string   `json:"positions"`
	// Values holds per-category contributions in normalized units, higher is better
	Values map[StatKey]float64 `json:"values"`
	// Stats holds raw projections, including PA and IP
	Stats       map[StatKey]float64 `json:"stats,omitempty"`
	ADP         float64             `json:"adp,omitempty"`
	OverallRank int                 `json:"overall_rank,omitempty"`
}

func (p Player) Value(key StatKey) float64 {
	return p.Values[key]
}

func (p Player) Stat(key StatKey) float64 {
	return p.Stats[key]
}

// HasADP reports whether an average draft position is known
func (p Player) HasADP() bool {
	return p.ADP > 0
}

func (p Player) IsPitcher() bool {
	return p.Type == PlayerTypePitcher
}

// PitcherRole infers SP or RP from which role-specific category the player contributes to
func (p Player) PitcherRole() string {
	if p.Value(StatQS) != 0 {
		return "SP"
	}
	if p.Value(StatSVHD) != 0 {
		return "RP"
	}
	return "SP"
}

// EligiblePositions falls back to the pitcher role when no positions were supplied
func (p Player) EligiblePositions() []string {
	if len(p.Positions) > 0 {
		return p.Positions
	}
	if p.IsPitcher() {
		return []string{p.PitcherRole()}
	}
	return []string{"UTIL"}
}

// PrimaryPosition is the position used for scarcity comparisons
func (p Player) PrimaryPosition() string {
	if p.IsPitcher() {
		return p.PitcherRole()
	}
	return NormalizePosition(p.EligiblePositions()[0])
}

// NormalizePosition folds outfield spots into OF and DH into UTIL
func NormalizePosition(pos string) string {
	pos = strings.ToUpper(strings.TrimSpace(pos))
	switch pos {
	case "LF", "CF", "RF":
		return "OF"
	case "DH":
		return "UTIL"
	}
	return pos
}

// TypeValue sums the player's contributions across the categories of its own type
func (p Player) TypeValue(reg *CategoryRegistry) float64 {
	total := 0.0
	for _, cat := range reg.ForType(p.Type) {
		total += p.Value(cat.Key)
	}
	return total
}
