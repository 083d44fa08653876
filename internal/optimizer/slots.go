package optimizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stitts-dev/catdraft/internal/models"
)

// SlotName is a roster slot such as "SS", "UTIL" or "BE"
type SlotName string

const (
	SlotCatcher     SlotName = "C"
	SlotFirstBase   SlotName = "1B"
	SlotSecondBase  SlotName = "2B"
	SlotThirdBase   SlotName = "3B"
	SlotShortstop   SlotName = "SS"
	SlotOutfield    SlotName = "OF"
	SlotUtility     SlotName = "UTIL"
	SlotStarter     SlotName = "SP"
	SlotReliever    SlotName = "RP"
	SlotPitcherFlex SlotName = "P"
	SlotBench       SlotName = "BE"
)

// SlotKind orders slots for assignment: exact positions are tried first, then
// flex, then pitcher flex, then bench
type SlotKind int

const (
	SlotKindPosition SlotKind = iota
	SlotKindFlex
	SlotKindPitcherFlex
	SlotKindBench
)

func (k SlotKind) String() string {
	switch k {
	case SlotKindPosition:
		return "position"
	case SlotKindFlex:
		return "flex"
	case SlotKindPitcherFlex:
		return "pitcher-flex"
	case SlotKindBench:
		return "bench"
	}
	return "unknown"
}

type slotDefinition struct {
	kind       SlotKind
	playerType models.PlayerType // empty for bench
}

var slotDefinitions = map[SlotName]slotDefinition{
	SlotCatcher:     {SlotKindPosition, models.PlayerTypeHitter},
	SlotFirstBase:   {SlotKindPosition, models.PlayerTypeHitter},
	SlotSecondBase:  {SlotKindPosition, models.PlayerTypeHitter},
	SlotThirdBase:   {SlotKindPosition, models.PlayerTypeHitter},
	SlotShortstop:   {SlotKindPosition, models.PlayerTypeHitter},
	SlotOutfield:    {SlotKindPosition, models.PlayerTypeHitter},
	SlotStarter:     {SlotKindPosition, models.PlayerTypePitcher},
	SlotReliever:    {SlotKindPosition, models.PlayerTypePitcher},
	SlotUtility:     {SlotKindFlex, models.PlayerTypeHitter},
	SlotPitcherFlex: {SlotKindPitcherFlex, models.PlayerTypePitcher},
	SlotBench:       {SlotKindBench, ""},
}

// positionToSlots expands an eligible position to the slots it may fill.
// Bench is appended for everyone.
var positionToSlots = map[string][]SlotName{
	"C":    {SlotCatcher, SlotUtility},
	"1B":   {SlotFirstBase, SlotUtility},
	"2B":   {SlotSecondBase, SlotUtility},
	"3B":   {SlotThirdBase, SlotUtility},
	"SS":   {SlotShortstop, SlotUtility},
	"OF":   {SlotOutfield, SlotUtility},
	"LF":   {SlotOutfield, SlotUtility},
	"CF":   {SlotOutfield, SlotUtility},
	"RF":   {SlotOutfield, SlotUtility},
	"DH":   {SlotUtility},
	"UTIL": {SlotUtility},
	"SP":   {SlotStarter, SlotPitcherFlex},
	"RP":   {SlotReliever, SlotPitcherFlex},
	"P":    {SlotPitcherFlex},
	"TWP":  {SlotUtility, SlotStarter, SlotPitcherFlex},
}

var ErrInvalidRosterSlots = errors.New("invalid roster slots")

// RosterSlot is one slot type and its per-team capacity
type RosterSlot struct {
	Name     SlotName `json:"name"`
	Capacity int      `json:"capacity"`
}

func (s RosterSlot) Kind() SlotKind {
	return slotDefinitions[s.Name].kind
}

// IsStarting reports whether a player in this slot counts at full weight
func (s RosterSlot) IsStarting() bool {
	return s.Kind() != SlotKindBench
}

func (s RosterSlot) PlayerType() models.PlayerType {
	return slotDefinitions[s.Name].playerType
}

// DefaultRosterSlots is the 10-team H2H layout: 13 hitters/pitchers active
// per side plus an 8-man bench
func DefaultRosterSlots() []RosterSlot {
	return []RosterSlot{
		{Name: SlotCatcher, Capacity: 1},
		{Name: SlotFirstBase, Capacity: 1},
		{Name: SlotSecondBase, Capacity: 1},
		{Name: SlotThirdBase, Capacity: 1},
		{Name: SlotShortstop, Capacity: 1},
		{Name: SlotOutfield, Capacity: 3},
		{Name: SlotUtility, Capacity: 2},
		{Name: SlotStarter, Capacity: 3},
		{Name: SlotReliever, Capacity: 2},
		{Name: SlotPitcherFlex, Capacity: 2},
		{Name: SlotBench, Capacity: 8},
	}
}

// ParseRosterSlots reads the "C:1,1B:1,OF:3,BE:8" config format
func ParseRosterSlots(spec string) ([]RosterSlot, error) {
	var slots []RosterSlot
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not NAME:COUNT", ErrInvalidRosterSlots, part)
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return nil, fmt.Errorf("%w: capacity for %s: %v", ErrInvalidRosterSlots, name, err)
		}
		slots = append(slots, RosterSlot{Name: SlotName(strings.ToUpper(strings.TrimSpace(name))), Capacity: capacity})
	}
	if err := ValidateRosterSlots(slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ValidateRosterSlots rejects unknown slot names, duplicates and negative capacities
func ValidateRosterSlots(slots []RosterSlot) error {
	if len(slots) == 0 {
		return fmt.Errorf("%w: no slots", ErrInvalidRosterSlots)
	}
	seen := make(map[SlotName]bool, len(slots))
	for _, s := range slots {
		if _, ok := slotDefinitions[s.Name]; !ok {
			return fmt.Errorf("%w: unknown slot %q", ErrInvalidRosterSlots, s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate slot %q", ErrInvalidRosterSlots, s.Name)
		}
		if s.Capacity < 0 {
			return fmt.Errorf("%w: negative capacity for %q", ErrInvalidRosterSlots, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// FromSpecs converts league config slot specs
func FromSpecs(specs []models.RosterSlotSpec) ([]RosterSlot, error) {
	if len(specs) == 0 {
		return DefaultRosterSlots(), nil
	}
	slots := make([]RosterSlot, len(specs))
	for i, s := range specs {
		slots[i] = RosterSlot{Name: SlotName(strings.ToUpper(s.Name)), Capacity: s.Capacity}
	}
	if err := ValidateRosterSlots(slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// StartingSlots counts starting capacity for a player type across the layout
func StartingSlots(slots []RosterSlot, t models.PlayerType) int {
	total := 0
	for _, s := range slots {
		if s.IsStarting() && s.PlayerType() == t {
			total += s.Capacity
		}
	}
	return total
}

// EligibleSlots expands a player's positions into the slots of the layout it
// can fill, ordered by slot kind and then by layout order
func EligibleSlots(player models.Player, slots []RosterSlot) []SlotName {
	allowed := map[SlotName]bool{SlotBench: true}
	for _, pos := range player.EligiblePositions() {
		for _, s := range positionToSlots[strings.ToUpper(pos)] {
			allowed[s] = true
		}
	}
	// every hitter can fill a utility slot, every pitcher the pitcher flex
	if player.IsPitcher() {
		allowed[SlotPitcherFlex] = true
	} else {
		allowed[SlotUtility] = true
	}

	var ordered []SlotName
	for kind := SlotKindPosition; kind <= SlotKindBench; kind++ {
		for _, s := range slots {
			if s.Kind() == kind && allowed[s.Name] {
				ordered = append(ordered, s.Name)
			}
		}
	}
	return ordered
}
