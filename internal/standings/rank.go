package standings

import "sort"

// Rank places value among the opponents: 1 + strictly greater opponents + half
// of the tied ones, so ties share the mean position.
func Rank(value float64, others []float64) float64 {
	greater := 0
	tied := 0
	for _, v := range others {
		if v > value {
			greater++
		} else if v == value {
			tied++
		}
	}
	return 1 + float64(greater) + float64(tied)/2
}

// WinProbability is the chance of beating a random opponent in a category
// when holding the given rank. A league of one team is a coin flip.
func WinProbability(rank float64, numTeams int) float64 {
	if numTeams <= 1 {
		return 0.5
	}
	return (float64(numTeams) - rank) / float64(numTeams-1)
}

// SortedDescending returns a sorted copy, the input is left untouched
func SortedDescending(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
