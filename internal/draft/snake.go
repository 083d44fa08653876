package draft

// NoFurtherTurn is returned by PicksUntilNextTurn once a team has made its last pick
const NoFurtherTurn = 999

// SnakeTeam returns the 0-based team index on the clock at a 0-based overall
// pick. Even rounds run forward, odd rounds run backward.
func SnakeTeam(pickIndex, numTeams int) int {
	if numTeams <= 0 {
		return 0
	}
	round := pickIndex / numTeams
	pos := pickIndex % numTeams
	if round%2 == 0 {
		return pos
	}
	return numTeams - 1 - pos
}

// PicksUntilNextTurn counts the picks from currentPick until myTeam is next on
// the clock after it
func PicksUntilNextTurn(currentPick, myTeam, numTeams, rounds int) int {
	total := numTeams * rounds
	for i := currentPick + 1; i < total; i++ {
		if SnakeTeam(i, numTeams) == myTeam {
			return i - currentPick
		}
	}
	return NoFurtherTurn
}

// Round is the 1-based round of a 0-based overall pick
func Round(pickIndex, numTeams int) int {
	if numTeams <= 0 {
		return 1
	}
	return pickIndex/numTeams + 1
}
