package optimizer

import (
	"sort"

	"github.com/stitts-dev/catdraft/internal/models"
)

// Assignment represents a player assigned to a specific slot
type Assignment struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Slot       SlotName `json:"slot"`
}

// Result is one team's slot assignment plus whatever capacity is left
type Result struct {
	Assignments []Assignment     `json:"assignments"`
	Starters    []models.Player  `json:"starters"`
	Bench       []models.Player  `json:"bench"`
	Unassigned  []models.Player  `json:"unassigned"`
	Remaining   map[SlotName]int `json:"remaining"`

	slots  []RosterSlot
	bySlot map[string]SlotName
}

// Optimize assigns players to slots greedily. Players with the fewest eligible
// slots go first so a catcher-only player is not crowded out of C by someone
// who could also play UTIL. Each player takes the first eligible slot with
// capacity left; players with no room end up in Unassigned.
//
// The assignment is not globally optimal.
func Optimize(players []models.Player, slots []RosterSlot) *Result {
	res := &Result{
		Remaining: make(map[SlotName]int, len(slots)),
		slots:     slots,
		bySlot:    make(map[string]SlotName, len(players)),
	}
	for _, s := range slots {
		res.Remaining[s.Name] += s.Capacity
	}

	type candidate struct {
		player   models.Player
		eligible []SlotName
	}
	candidates := make([]candidate, len(players))
	for i, p := range players {
		candidates[i] = candidate{player: p, eligible: EligibleSlots(p, slots)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].eligible) < len(candidates[j].eligible)
	})

	for _, c := range candidates {
		if _, ok := res.place(c.player, c.eligible); !ok {
			res.Unassigned = append(res.Unassigned, c.player)
		}
	}

	return res
}

func (r *Result) place(p models.Player, eligible []SlotName) (SlotName, bool) {
	slot, ok := r.firstOpen(eligible)
	if !ok {
		return "", false
	}
	r.Remaining[slot]--
	r.Assignments = append(r.Assignments, Assignment{PlayerID: p.ID, PlayerName: p.Name, Slot: slot})
	r.bySlot[p.ID] = slot
	if slot == SlotBench {
		r.Bench = append(r.Bench, p)
	} else {
		r.Starters = append(r.Starters, p)
	}
	return slot, true
}

func (r *Result) firstOpen(eligible []SlotName) (SlotName, bool) {
	for _, s := range eligible {
		if r.Remaining[s] > 0 {
			return s, true
		}
	}
	return "", false
}

// SlotFor returns the slot a player was assigned to
func (r *Result) SlotFor(playerID string) (SlotName, bool) {
	s, ok := r.bySlot[playerID]
	return s, ok
}

// HasStartingNeed reports whether the player could still go straight into a
// non-bench slot
func (r *Result) HasStartingNeed(p models.Player) bool {
	for _, s := range EligibleSlots(p, r.slots) {
		if s != SlotBench && r.Remaining[s] > 0 {
			return true
		}
	}
	return false
}

// CanAdd reports whether the player fits anywhere, bench included
func (r *Result) CanAdd(p models.Player) bool {
	_, ok := r.firstOpen(EligibleSlots(p, r.slots))
	return ok
}

// RemainingStarting counts open non-bench capacity for a player type
func (r *Result) RemainingStarting(t models.PlayerType) int {
	total := 0
	for _, s := range r.slots {
		if s.IsStarting() && s.PlayerType() == t {
			total += r.Remaining[s.Name]
		}
	}
	return total
}

// Add places one more player using the same first-open rule and reports the slot.
// The simulator uses it to grow rosters pick by pick.
func (r *Result) Add(p models.Player) (SlotName, bool) {
	return r.place(p, EligibleSlots(p, r.slots))
}
