package domain

import "strings"

// emptyNarrativeMarkers are the literal variants that denote "event
// narrative empty, episode narrative begins here" in the malformed
// convention, in priority order from most to least specific. The order is
// load-bearing: it mirrors the format's observed variants and must not be
// reshuffled.
var emptyNarrativeMarkers = []string{
	`,"","`,
	`,""," `,
	`,"",`,
}

// findEmptyNarrativeMarker locates the rightmost occurrence of the
// highest-priority marker variant present in line. It returns the index of
// the marker's leading comma and whether any variant matched.
func findEmptyNarrativeMarker(line string) (int, bool) {
	for _, marker := range emptyNarrativeMarkers {
		if i := strings.LastIndex(line, marker); i >= 0 {
			return i, true
		}
	}
	return 0, false
}
