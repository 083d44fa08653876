package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stitts-dev/catdraft/internal/models"
)

const maxExplainedCategories = 3

// Explain renders a short human-readable summary of a draft score. It only
// reads the breakdown already stored on the score.
func Explain(s DraftScore) string {
	var parts []string

	gains := make([]CategoryGain, 0, len(s.Categories))
	for _, g := range s.Categories {
		if g.Gain > 0 {
			gains = append(gains, g)
		}
	}
	sort.SliceStable(gains, func(i, j int) bool { return gains[i].Gain > gains[j].Gain })

	if len(gains) == 0 {
		parts = append(parts, "No category win gain")
	} else {
		if len(gains) > maxExplainedCategories {
			gains = gains[:maxExplainedCategories]
		}
		labels := make([]string, len(gains))
		for i, g := range gains {
			label := fmt.Sprintf("%s +%.2f", g.Category, g.Gain)
			if g.Strategy == models.StrategyTarget || g.Strategy == models.StrategyLock {
				label += " (" + string(g.Strategy) + ")"
			}
			if g.FractionalCredit {
				label += " closing gap"
			}
			labels[i] = label
		}
		parts = append(parts, fmt.Sprintf("Adds %.2f expected category wins: %s", s.MCW, strings.Join(labels, ", ")))
	}

	if s.Confidence < 1 {
		parts = append(parts, fmt.Sprintf("standings confidence %.0f%%, surplus value %.2f", s.Confidence*100, s.SurplusValue))
	}
	if s.VONA > 0 {
		parts = append(parts, fmt.Sprintf("%.2f over the next best at the same position", s.VONA))
	}
	if s.Urgency > 0 {
		parts = append(parts, fmt.Sprintf("likely gone %.0f picks before my next turn", s.Urgency))
	}
	if s.RosterFit > 0 {
		parts = append(parts, "fills an open starting slot")
	}
	if s.BenchPenaltyReason != "" {
		parts = append(parts, s.BenchPenaltyReason)
	}

	return strings.Join(parts, "; ")
}
