package scoring

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/optimizer"
)

// CategoryStats is the spread of one category's contributions across the pool
type CategoryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// ComputeCategoryStats measures the mean and population standard deviation of
// every category over the available players of that category's type. A zero
// spread is reported as 1 so normalizing never divides by zero.
func ComputeCategoryStats(available []models.Player, reg *models.CategoryRegistry) map[models.StatKey]CategoryStats {
	out := make(map[models.StatKey]CategoryStats, reg.Len())
	for _, cat := range reg.All() {
		var values []float64
		for _, p := range available {
			if cat.Applies(p.Type) {
				values = append(values, p.Value(cat.Key))
			}
		}
		if len(values) == 0 {
			out[cat.Key] = CategoryStats{Mean: 0, StdDev: 1}
			continue
		}
		mean, std := stat.PopMeanStdDev(values, nil)
		if std <= 0 {
			std = 1
		}
		out[cat.Key] = CategoryStats{Mean: mean, StdDev: std}
	}
	return out
}

// NormalizedValue sums the player's standardized contributions over the
// categories of its own type
func NormalizedValue(p models.Player, stats map[models.StatKey]CategoryStats, reg *models.CategoryRegistry) float64 {
	total := 0.0
	for _, cat := range reg.ForType(p.Type) {
		cs, ok := stats[cat.Key]
		if !ok || cs.StdDev == 0 {
			continue
		}
		total += (p.Value(cat.Key) - cs.Mean) / cs.StdDev
	}
	return total
}

// RankedPlayer is a player's normalized value on the position board
type RankedPlayer struct {
	PlayerID string            `json:"player_id"`
	Type     models.PlayerType `json:"player_type"`
	Position string            `json:"position"`
	Value    float64           `json:"value"`
}

// PositionBoard lists available players per position, best first
type PositionBoard struct {
	byPosition map[string][]RankedPlayer
	values     map[string]RankedPlayer
}

// BuildPositionBoard normalizes every available player and files them under
// each position they are eligible at. Pitchers are filed under their role.
func BuildPositionBoard(available []models.Player, stats map[models.StatKey]CategoryStats, reg *models.CategoryRegistry) *PositionBoard {
	board := &PositionBoard{
		byPosition: make(map[string][]RankedPlayer),
		values:     make(map[string]RankedPlayer, len(available)),
	}

	for _, p := range available {
		rp := RankedPlayer{
			PlayerID: p.ID,
			Type:     p.Type,
			Position: p.PrimaryPosition(),
			Value:    NormalizedValue(p, stats, reg),
		}
		board.values[p.ID] = rp

		for _, pos := range boardPositions(p) {
			board.byPosition[pos] = append(board.byPosition[pos], rp)
		}
	}

	for pos := range board.byPosition {
		list := board.byPosition[pos]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Value > list[j].Value })
	}
	return board
}

func boardPositions(p models.Player) []string {
	if p.IsPitcher() {
		return []string{p.PitcherRole()}
	}
	seen := make(map[string]bool)
	var out []string
	for _, pos := range p.EligiblePositions() {
		n := models.NormalizePosition(pos)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// Value returns a player's normalized value if the player is on the board
func (b *PositionBoard) Value(playerID string) (float64, bool) {
	rp, ok := b.values[playerID]
	return rp.Value, ok
}

// Position returns the players at a position, best first
func (b *PositionBoard) Position(pos string) []RankedPlayer {
	return b.byPosition[pos]
}

// VONA is the value over the next available player at the candidate's primary
// position. The last player at a position keeps its whole value; a player not
// on the board scores 0.
func (b *PositionBoard) VONA(p models.Player) float64 {
	list := b.byPosition[p.PrimaryPosition()]
	for i, rp := range list {
		if rp.PlayerID != p.ID {
			continue
		}
		if i < len(list)-1 {
			return rp.Value - list[i+1].Value
		}
		return rp.Value
	}
	return 0
}

// ReplacementLevels is the value of the last starter a league would roster at
// each position, floored by a per-type baseline
type ReplacementLevels struct {
	ByPosition map[string]float64            `json:"by_position"`
	Baseline   map[models.PlayerType]float64 `json:"baseline"`
}

// ComputeReplacementLevels ranks players by primary position. The replacement
// level at a slot is the (capacity x numTeams)-th best player there, and never
// lower than the type baseline, which is the player at the type's total
// starting demand. Positions without enough players use the baseline.
func ComputeReplacementLevels(board *PositionBoard, slots []optimizer.RosterSlot, numTeams int) ReplacementLevels {
	levels := ReplacementLevels{
		ByPosition: make(map[string]float64),
		Baseline:   make(map[models.PlayerType]float64, 2),
	}

	byPrimary := make(map[string][]float64)
	byType := make(map[models.PlayerType][]float64)
	for _, rp := range board.values {
		byPrimary[rp.Position] = append(byPrimary[rp.Position], rp.Value)
		byType[rp.Type] = append(byType[rp.Type], rp.Value)
	}
	for _, values := range byPrimary {
		sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	}

	for _, t := range []models.PlayerType{models.PlayerTypeHitter, models.PlayerTypePitcher} {
		values := byType[t]
		sort.Sort(sort.Reverse(sort.Float64Slice(values)))
		demand := optimizer.StartingSlots(slots, t) * numTeams
		switch {
		case len(values) == 0:
			levels.Baseline[t] = 0
		case demand > 0 && len(values) >= demand:
			levels.Baseline[t] = values[demand-1]
		default:
			levels.Baseline[t] = values[len(values)-1]
		}
	}

	for _, s := range slots {
		if !s.IsStarting() {
			continue
		}
		pos := string(s.Name)
		baseline := levels.Baseline[s.PlayerType()]
		demand := s.Capacity * numTeams
		values := byPrimary[pos]
		if demand > 0 && len(values) >= demand && values[demand-1] > baseline {
			levels.ByPosition[pos] = values[demand-1]
			continue
		}
		levels.ByPosition[pos] = baseline
	}

	return levels
}

// For returns the replacement level a player is measured against. Hitters use
// their scarcest eligible slot, UTIL included; pitchers use their role.
func (r ReplacementLevels) For(p models.Player) float64 {
	if p.IsPitcher() {
		if v, ok := r.ByPosition[p.PitcherRole()]; ok {
			return v
		}
		return r.Baseline[p.Type]
	}

	level, found := 0.0, false
	consider := func(pos string) {
		if v, ok := r.ByPosition[models.NormalizePosition(pos)]; ok && (!found || v < level) {
			level, found = v, true
		}
	}
	for _, pos := range p.EligiblePositions() {
		consider(pos)
	}
	consider(string(optimizer.SlotUtility))
	if !found {
		return r.Baseline[p.Type]
	}
	return level
}

// SurplusValue is normalized value above replacement at the player's scarcest slot
func SurplusValue(p models.Player, normalized float64, levels ReplacementLevels) float64 {
	return normalized - levels.For(p)
}
