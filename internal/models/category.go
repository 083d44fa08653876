package models

import (
	"errors"
	"fmt"
)

// StatKey identifies a scoring category or a raw projected stat
type StatKey string

const (
	StatRuns       StatKey = "R"
	StatTotalBases StatKey = "TB"
	StatRBI        StatKey = "RBI"
	StatSteals     StatKey = "SB"
	StatOBP        StatKey = "OBP"
	StatStrikeouts StatKey = "K"
	StatQS         StatKey = "QS"
	StatERA        StatKey = "ERA"
	StatWHIP       StatKey = "WHIP"
	StatSVHD       StatKey = "SVHD"

	// Weight stats used to average rate categories
	StatPA StatKey = "PA"
	StatIP StatKey = "IP"
)

var ErrInvalidCategory = errors.New("invalid category definition")

// Category describes one head-to-head scoring category
type Category struct {
	Key        StatKey    `json:"key"`
	Label      string     `json:"label"`
	PlayerType PlayerType `json:"player_type"`
	// Inverted means a lower raw value wins the category (ERA, WHIP)
	Inverted   bool    `json:"inverted"`
	IsRateStat bool    `json:"is_rate_stat"`
	WeightStat StatKey `json:"weight_stat,omitempty"`
}

// Applies reports whether players of type t contribute to the category
func (c Category) Applies(t PlayerType) bool {
	return c.PlayerType == t
}

// DefaultCategories returns the 5x5 R/TB/RBI/SB/OBP + K/QS/ERA/WHIP/SVHD layout
func DefaultCategories() []Category {
	return []Category{
		{Key: StatRuns, Label: "Runs", PlayerType: PlayerTypeHitter},
		{Key: StatTotalBases, Label: "Total Bases", PlayerType: PlayerTypeHitter},
		{Key: StatRBI, Label: "RBI", PlayerType: PlayerTypeHitter},
		{Key: StatSteals, Label: "Stolen Bases", PlayerType: PlayerTypeHitter},
		{Key: StatOBP, Label: "On-Base Percentage", PlayerType: PlayerTypeHitter, IsRateStat: true, WeightStat: StatPA},
		{Key: StatStrikeouts, Label: "Strikeouts", PlayerType: PlayerTypePitcher},
		{Key: StatQS, Label: "Quality Starts", PlayerType: PlayerTypePitcher},
		{Key: StatERA, Label: "ERA", PlayerType: PlayerTypePitcher, Inverted: true, IsRateStat: true, WeightStat: StatIP},
		{Key: StatWHIP, Label: "WHIP", PlayerType: PlayerTypePitcher, Inverted: true, IsRateStat: true, WeightStat: StatIP},
		{Key: StatSVHD, Label: "Saves + Holds", PlayerType: PlayerTypePitcher},
	}
}

// CategoryRegistry is an ordered lookup table of the league's categories
type CategoryRegistry struct {
	ordered []Category
	byKey   map[StatKey]int
}

// NewCategoryRegistry validates the definitions and indexes them by key
func NewCategoryRegistry(categories []Category) (*CategoryRegistry, error) {
	reg := &CategoryRegistry{
		ordered: make([]Category, 0, len(categories)),
		byKey:   make(map[StatKey]int, len(categories)),
	}

	for _, cat := range categories {
		if cat.Key == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidCategory)
		}
		if _, dup := reg.byKey[cat.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %s", ErrInvalidCategory, cat.Key)
		}
		if !cat.PlayerType.Valid() {
			return nil, fmt.Errorf("%w: %s has player type %q", ErrInvalidCategory, cat.Key, cat.PlayerType)
		}
		if cat.IsRateStat && cat.WeightStat == "" {
			return nil, fmt.Errorf("%w: rate stat %s has no weight stat", ErrInvalidCategory, cat.Key)
		}
		if cat.Label == "" {
			cat.Label = string(cat.Key)
		}
		reg.byKey[cat.Key] = len(reg.ordered)
		reg.ordered = append(reg.ordered, cat)
	}

	return reg, nil
}

// DefaultRegistry returns a registry over DefaultCategories
func DefaultRegistry() *CategoryRegistry {
	reg, err := NewCategoryRegistry(DefaultCategories())
	if err != nil {
		panic(err)
	}
	return reg
}

func (r *CategoryRegistry) Get(key StatKey) (Category, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return Category{}, false
	}
	return r.ordered[idx], true
}

// All returns a copy of the categories in league order
func (r *CategoryRegistry) All() []Category {
	out := make([]Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func (r *CategoryRegistry) Keys() []StatKey {
	keys := make([]StatKey, len(r.ordered))
	for i, cat := range r.ordered {
		keys[i] = cat.Key
	}
	return keys
}

// ForType returns the categories a player of the given type contributes to
func (r *CategoryRegistry) ForType(t PlayerType) []Category {
	var out []Category
	for _, cat := range r.ordered {
		if cat.PlayerType == t {
			out = append(out, cat)
		}
	}
	return out
}

func (r *CategoryRegistry) Len() int {
	return len(r.ordered)
}
