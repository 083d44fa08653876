package models

// Strategy is the per-category drafting posture
type Strategy string

const (
	StrategyNeutral Strategy = "neutral"
	StrategyTarget  Strategy = "target"
	StrategyPunt    Strategy = "punt"
	StrategyLock    Strategy = "lock"
)

func (s Strategy) Valid() bool {
	switch s {
	case StrategyNeutral, StrategyTarget, StrategyPunt, StrategyLock:
		return true
	}
	return false
}
