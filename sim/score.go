package sim

// Score calculates the points for playing a level.
//
// A complete solution within the byte budget earns the level's points,
// scaled up for programs shorter than the budget. Otherwise every pressed
// button earns a share of half the points. Programs exceeding the budget
// earn less per button, down to nothing at twice the budget.
//
// A level without white buttons earns no points per button. Byte costs
// below 1 are treated as 1.
func Score(points, maxBytes, total, buttons, bytes int) int {
	if bytes < 1 {
		bytes = 1
	}
	if buttons == total && bytes <= maxBytes {
		return points * maxBytes / bytes
	}
	if total == 0 {
		return 0
	}
	var v int
	switch {
	case bytes <= maxBytes:
		v = points / (2 * total)
	case bytes <= 2*maxBytes:
		v = points * (2*maxBytes - bytes) / (2 * maxBytes * total)
	}
	return buttons * v
}
