package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Weights holds the tuned coefficients of the draft score. The defaults come
// out of simulation sweeps and should only change alongside a new benchmark run.
type Weights struct {
	MCW         float64 `json:"mcw" mapstructure:"mcw"`
	VONAHigh    float64 `json:"vona_high" mapstructure:"vona_high"`
	UrgencyHigh float64 `json:"urgency_high" mapstructure:"urgency_high"`
	VONALow     float64 `json:"vona_low" mapstructure:"vona_low"`
	UrgencyLow  float64 `json:"urgency_low" mapstructure:"urgency_low"`

	// ConfidenceStart and ConfidenceEnd are overall pick counts
	ConfidenceStart float64 `json:"confidence_start" mapstructure:"confidence_start"`
	ConfidenceEnd   float64 `json:"confidence_end" mapstructure:"confidence_end"`
	DraftRounds     int     `json:"draft_rounds" mapstructure:"draft_rounds"`

	BenchGrace        float64 `json:"bench_grace" mapstructure:"bench_grace"`
	BenchPenaltyRate  float64 `json:"bench_penalty_rate" mapstructure:"bench_penalty_rate"`
	BenchPenaltyFloor float64 `json:"bench_penalty_floor" mapstructure:"bench_penalty_floor"`

	UrgencyCap           float64 `json:"urgency_cap" mapstructure:"urgency_cap"`
	ADPSigma             float64 `json:"adp_sigma" mapstructure:"adp_sigma"`
	AvailabilityDiscount float64 `json:"availability_discount" mapstructure:"availability_discount"`
}

func DefaultWeights() Weights {
	return Weights{
		MCW:                  21.0,
		VONAHigh:             0.16,
		UrgencyHigh:          0.02,
		VONALow:              0.42,
		UrgencyLow:           0.55,
		ConfidenceStart:      30,
		ConfidenceEnd:        100,
		DraftRounds:          25,
		BenchGrace:           0.15,
		BenchPenaltyRate:     0.63,
		BenchPenaltyFloor:    0.35,
		UrgencyCap:           15,
		ADPSigma:             18,
		AvailabilityDiscount: 0,
	}
}

// Confidence ramps linearly from 0 at ConfidenceStart picks to 1 at ConfidenceEnd
func Confidence(picksMade int, w Weights) float64 {
	span := w.ConfidenceEnd - w.ConfidenceStart
	if span <= 0 {
		return 1
	}
	return clamp((float64(picksMade)-w.ConfidenceStart)/span, 0, 1)
}

// LeagueConfidence is Confidence held at 0 until every team has made two
// picks, since the standings say nothing before then
func LeagueConfidence(picksMade, numTeams int, w Weights) float64 {
	if picksMade < 2*numTeams {
		return 0
	}
	return Confidence(picksMade, w)
}

// DraftProgress is the fraction of my own picks already made
func DraftProgress(myPickCount int, w Weights) float64 {
	if w.DraftRounds <= 0 {
		return 1
	}
	return math.Min(1, float64(myPickCount)/float64(w.DraftRounds))
}

// Urgency counts how many of my waiting picks exceed the picks the player is
// expected to survive. Unknown ADP means no urgency.
func Urgency(adp float64, currentPick, picksUntilMine int, w Weights) float64 {
	if adp <= 0 {
		return 0
	}
	gap := adp - float64(currentPick)
	return clamp(float64(picksUntilMine)-gap, 0, w.UrgencyCap)
}

// Availability estimates the chance the player is still on the board at my
// next pick, treating ADP as the mean of a normal with the given sigma
func Availability(adp float64, currentPick, picksUntilMine int, sigma float64) float64 {
	if adp <= 0 {
		return 1
	}
	if sigma <= 0 {
		sigma = 1
	}
	z := (float64(currentPick+picksUntilMine) - adp) / sigma
	return clamp(1-distuv.UnitNormal.CDF(z), 0, 1)
}

// ScoreInput gathers everything the blender needs for one candidate
type ScoreInput struct {
	PlayerID        string
	PlayerName      string
	MCW             MCWResult
	VONA            float64
	SurplusValue    float64
	ADP             float64
	HasStartingNeed bool
	CurrentPick     int
	PicksUntilMine  int
	PicksMade       int
	MyPickCount     int
	NumTeams        int
}

// DraftScore is the final score plus every intermediate term behind it
type DraftScore struct {
	PlayerID            string         `json:"player_id"`
	PlayerName          string         `json:"player_name"`
	MCW                 float64        `json:"mcw"`
	VONA                float64        `json:"vona"`
	Urgency             float64        `json:"urgency"`
	RosterFit           float64        `json:"roster_fit"`
	SurplusValue        float64        `json:"surplus_value"`
	Availability        float64        `json:"availability"`
	BenchPenalty        float64        `json:"bench_penalty"`
	BenchPenaltyReason  string         `json:"bench_penalty_reason,omitempty"`
	Confidence          float64        `json:"confidence"`
	DraftProgress       float64        `json:"draft_progress"`
	HighConfidenceScore float64        `json:"high_confidence_score"`
	LowConfidenceScore  float64        `json:"low_confidence_score"`
	Blended             float64        `json:"blended"`
	FinalScore          float64        `json:"final_score"`
	Categories          []CategoryGain `json:"categories"`
	Explanation         string         `json:"explanation"`
}

// Blend mixes the category-wins path and the best-player-available path by
// standings confidence and applies the post-score multipliers
func Blend(in ScoreInput, w Weights) DraftScore {
	s := DraftScore{
		PlayerID:      in.PlayerID,
		PlayerName:    in.PlayerName,
		MCW:           in.MCW.Total,
		VONA:          in.VONA,
		SurplusValue:  in.SurplusValue,
		Urgency:       Urgency(in.ADP, in.CurrentPick, in.PicksUntilMine, w),
		Availability:  Availability(in.ADP, in.CurrentPick, in.PicksUntilMine, w.ADPSigma),
		Confidence:    LeagueConfidence(in.PicksMade, in.NumTeams, w),
		DraftProgress: DraftProgress(in.MyPickCount, w),
		BenchPenalty:  1,
		Categories:    in.MCW.Categories,
	}
	if in.HasStartingNeed {
		s.RosterFit = 1
	}

	s.HighConfidenceScore = s.MCW*w.MCW*s.Confidence +
		s.VONA*w.VONAHigh +
		s.Urgency*w.UrgencyHigh +
		s.RosterFit*s.DraftProgress
	s.LowConfidenceScore = s.SurplusValue + s.VONA*w.VONALow + s.Urgency*w.UrgencyLow
	s.Blended = s.HighConfidenceScore*s.Confidence + s.LowConfidenceScore*(1-s.Confidence)

	final := s.Blended
	if w.AvailabilityDiscount > 0 && in.ADP > 0 {
		final *= 1 - s.Availability*w.AvailabilityDiscount
	}

	if !in.HasStartingNeed && s.DraftProgress > w.BenchGrace {
		s.BenchPenalty = math.Max(w.BenchPenaltyFloor, 1-s.DraftProgress*w.BenchPenaltyRate)
		s.BenchPenaltyReason = fmt.Sprintf(
			"no open starting slot at %.0f%% of the draft, score scaled by %.2f",
			s.DraftProgress*100, s.BenchPenalty,
		)
		final *= s.BenchPenalty
	}

	s.FinalScore = final
	s.Explanation = Explain(s)
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
