package scoring

import (
	"math"

	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/standings"
)

const (
	// gapCreditExponent makes partial gap closing convex
	gapCreditExponent = 1.5
	gapCreditScale    = 0.55
)

// CategoryGain is the per-category breakdown of a marginal category wins score
type CategoryGain struct {
	Category         models.StatKey  `json:"category"`
	Strategy         models.Strategy `json:"strategy"`
	Contribution     float64         `json:"contribution"`
	WinProbBefore    float64         `json:"win_prob_before"`
	WinProbAfter     float64         `json:"win_prob_after"`
	Gain             float64         `json:"gain"`
	FractionalCredit bool            `json:"fractional_credit,omitempty"`
}

// MCWResult is the total expected category wins a player adds
type MCWResult struct {
	Total      float64        `json:"total"`
	Categories []CategoryGain `json:"categories"`
}

// ComputeMCW measures how many expected weekly category wins a candidate adds.
// values is the candidate's per-category contribution, myTotals my team's
// contribution totals and othersDesc every opponent's total per category.
func ComputeMCW(
	values map[models.StatKey]float64,
	myTotals map[models.StatKey]float64,
	othersDesc map[models.StatKey][]float64,
	strategies map[models.StatKey]models.Strategy,
	cats []models.Category,
	numTeams int,
) MCWResult {
	result := MCWResult{Categories: make([]CategoryGain, 0, len(cats))}

	for _, cat := range cats {
		strategy := strategies[cat.Key]
		if strategy == "" {
			strategy = models.StrategyNeutral
		}
		contribution := values[cat.Key]
		gain := CategoryGain{Category: cat.Key, Strategy: strategy, Contribution: contribution}

		if strategy == models.StrategyPunt {
			result.Categories = append(result.Categories, gain)
			continue
		}

		myVal := myTotals[cat.Key]
		others := othersDesc[cat.Key]
		gain.WinProbBefore = standings.WinProbability(standings.Rank(myVal, others), numTeams)
		if contribution == 0 {
			gain.WinProbAfter = gain.WinProbBefore
			result.Categories = append(result.Categories, gain)
			continue
		}

		newVal := myVal + contribution
		gain.WinProbAfter = standings.WinProbability(standings.Rank(newVal, others), numTeams)
		gain.Gain = gain.WinProbAfter - gain.WinProbBefore

		if gain.Gain == 0 && contribution > 0 && numTeams > 1 {
			if credit, ok := gapCredit(myVal, newVal, others, numTeams); ok {
				gain.Gain = credit
				gain.FractionalCredit = true
			}
		}

		result.Total += gain.Gain
		result.Categories = append(result.Categories, gain)
	}

	return result
}

// gapCredit rewards closing part of the gap to the nearest team above when no
// one is actually passed
func gapCredit(before, after float64, others []float64, numTeams int) (float64, bool) {
	aboveBefore, aboveAfter := 0, 0
	nearest := math.Inf(1)
	for _, v := range others {
		if v > before {
			aboveBefore++
			if v < nearest {
				nearest = v
			}
		}
		if v > after {
			aboveAfter++
		}
	}
	if aboveBefore == 0 || aboveAfter != aboveBefore {
		return 0, false
	}

	gapBefore := nearest - before
	if gapBefore <= 0 {
		return 0, false
	}
	gapAfter := nearest - after
	closed := (gapBefore - gapAfter) / gapBefore
	return math.Pow(closed, gapCreditExponent) * gapCreditScale / float64(numTeams-1), true
}
