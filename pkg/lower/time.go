package lower

import (
	"strconv"
	"strings"
)

// parseHHMM converts "HH:MM" into minutes since midnight. Shapes are already validated by
// C1's pattern check; errors here would indicate a normalizer defect, not bad input.
func parseHHMM(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// restGapMinutes computes the gap, in minutes, between the end of shift `prev` on day d
// and the start of shift `next` on day d+1. An end earlier than or equal to start in clock
// time means the shift ends on the following calendar day (§4.4 tie-break).
func restGapMinutes(prevStart, prevEnd, nextStart, nextEnd string) int {
	ps, pe := parseHHMM(prevStart), parseHHMM(prevEnd)
	ns := parseHHMM(nextStart)

	prevEndAbs := pe
	if pe <= ps {
		prevEndAbs += 24 * 60 // ends on the following calendar day
	}
	// prev shift is assigned on day d, so its end (possibly next-day) is prevEndAbs
	// minutes after midnight of day d. next shift starts on day d+1, i.e. ns + 24*60
	// minutes after midnight of day d.
	nextStartAbs := ns + 24*60
	_ = nextEnd
	return nextStartAbs - prevEndAbs
}
