package game

// Tally returns the target with the strictly highest count. A tie at the highest
// count, or no votes at all, yields no winner. The result does not depend on map
// iteration order.
func Tally(votes map[string]int) (winnerID string, ok bool) {
	highest := 0
	leaders := 0
	for target, count := range votes {
		switch {
		case count > highest:
			highest = count
			leaders = 1
			winnerID = target
		case count == highest && count > 0:
			leaders++
		}
	}
	if leaders != 1 {
		return "", false
	}
	return winnerID, true
}
