package standings

import (
	"sort"

	"github.com/stitts-dev/catdraft/internal/models"
)

const (
	// MinPicksForStrategy is how many of my picks are needed before standings mean anything
	MinPicksForStrategy = 6
	// MaxPunts caps simultaneous punted categories
	MaxPunts = 2

	lockMargin            = 1.0
	puntGapBase           = 3.0
	puntGapPivot          = 0.4
	puntGapSlope          = 7.5
	forgivingPlayoffRatio = 0.55
)

// ClassifyStrategies labels each category lock, target, punt or neutral. The
// thresholds scale with playoffSpots/numTeams: forgiving formats require a
// bigger gap to punt and widen the target window. The input is not modified.
func ClassifyStrategies(standings []CategoryStanding, myPickCount, numTeams, playoffSpots int) []CategoryStanding {
	out := make([]CategoryStanding, len(standings))
	copy(out, standings)

	for i := range out {
		out[i].Strategy = models.StrategyNeutral
	}
	if myPickCount < MinPicksForStrategy || numTeams <= 1 {
		return out
	}

	ratio := float64(playoffSpots) / float64(numTeams)
	puntGap := puntGapBase + (ratio-puntGapPivot)*puntGapSlope

	puntRankFloor := float64(numTeams - 1)
	targetLow, targetHigh := 4.0, 7.0
	if ratio >= forgivingPlayoffRatio {
		puntRankFloor = float64(numTeams)
		targetLow, targetHigh = 3.0, 8.0
	}

	for i := range out {
		s := &out[i]
		switch {
		case s.Rank <= 2 && s.GapBelow >= lockMargin:
			s.Strategy = models.StrategyLock
		case s.Rank >= puntRankFloor && s.GapAbove >= puntGap:
			s.Strategy = models.StrategyPunt
		case s.Rank >= targetLow && s.Rank <= targetHigh:
			s.Strategy = models.StrategyTarget
		}
	}

	enforcePuntCap(out)
	return out
}

// enforcePuntCap keeps the MaxPunts worst-ranked punts and demotes the rest
func enforcePuntCap(standings []CategoryStanding) {
	var punts []int
	for i, s := range standings {
		if s.Strategy == models.StrategyPunt {
			punts = append(punts, i)
		}
	}
	if len(punts) <= MaxPunts {
		return
	}

	sort.SliceStable(punts, func(a, b int) bool {
		return standings[punts[a]].Rank > standings[punts[b]].Rank
	})
	for _, idx := range punts[MaxPunts:] {
		standings[idx].Strategy = models.StrategyNeutral
	}
}

// StrategyMap indexes the classified strategies by category
func StrategyMap(standings []CategoryStanding) map[models.StatKey]models.Strategy {
	out := make(map[models.StatKey]models.Strategy, len(standings))
	for _, s := range standings {
		out[s.Category] = s.Strategy
	}
	return out
}
