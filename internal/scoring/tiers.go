package scoring

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MaxTiers caps how many tiers DetectTiers produces
const MaxTiers = 15

// TierInput is anything with a value to tier on
type TierInput struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name,omitempty"`
	Value      float64 `json:"value"`
}

// Tier is a run of players separated from the next run by an unusually large drop
type Tier struct {
	Number  int         `json:"number"`
	Players []TierInput `json:"players"`
	Top     float64     `json:"top"`
	Bottom  float64     `json:"bottom"`
}

// DetectTiers sorts players by value and cuts a new tier wherever the drop to
// the next player exceeds median(gaps) + stddev(gaps). Once MaxTiers is
// reached every remaining player stays in the last tier.
func DetectTiers(players []TierInput) []Tier {
	if len(players) == 0 {
		return nil
	}

	sorted := make([]TierInput, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	if len(sorted) == 1 {
		return []Tier{newTier(1, sorted)}
	}

	gaps := make([]float64, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps[i-1] = sorted[i-1].Value - sorted[i].Value
	}
	threshold := median(gaps) + stat.PopStdDev(gaps, nil)

	var tiers []Tier
	start := 0
	for i, gap := range gaps {
		if gap > threshold && len(tiers) < MaxTiers-1 {
			tiers = append(tiers, newTier(len(tiers)+1, sorted[start:i+1]))
			start = i + 1
		}
	}
	tiers = append(tiers, newTier(len(tiers)+1, sorted[start:]))
	return tiers
}

func newTier(number int, players []TierInput) Tier {
	return Tier{
		Number:  number,
		Players: players,
		Top:     players[0].Value,
		Bottom:  players[len(players)-1].Value,
	}
}

// median averages the middle pair for even lengths
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
