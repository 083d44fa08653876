package models

// RosterSlotSpec is one slot type and how many of it each team has
type RosterSlotSpec struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// LeagueConfig is the explicit league context every engine call receives
type LeagueConfig struct {
	NumTeams     int              `json:"num_teams"`
	PlayoffSpots int              `json:"playoff_spots"`
	Rounds       int              `json:"rounds"`
	RosterSlots  []RosterSlotSpec `json:"roster_slots,omitempty"`
	Categories   []Category       `json:"categories,omitempty"`
}

// Registry builds the category registry, defaulting to the standard layout
func (l LeagueConfig) Registry() (*CategoryRegistry, error) {
	if len(l.Categories) == 0 {
		return NewCategoryRegistry(DefaultCategories())
	}
	return NewCategoryRegistry(l.Categories)
}
