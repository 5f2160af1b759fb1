// Package lower lowers normalized hard and soft rule variants onto a lattice.Lattice's
// CP-SAT model builder (C4/C5). Each recognized kind gets one lowering function; the
// dispatch switches in LowerHard/LowerSoft are closed over roster's tagged variant set.
package lower

// slidingWindows returns every contiguous run of day indices [start,end) of length
// windowDays over [0,numDays), including truncated windows at the tail (§4.4: windows
// that would fall off the calendar are truncated, never wrapped).
func slidingWindows(numDays, windowDays int) [][2]int {
	if windowDays <= 0 {
		windowDays = 1
	}
	windows := make([][2]int, 0, numDays)
	for start := 0; start < numDays; start++ {
		end := start + windowDays
		if end > numDays {
			end = numDays
		}
		windows = append(windows, [2]int{start, end})
	}
	return windows
}
