package rendering

import (
	"strconv"
	"strings"
)

// openEndedIndicators mark single dates that must not gain a range separator.
var openEndedIndicators = []string{"present", "expected", "ongoing", "current", "graduation"}

// NormalizeDates ensures a date range string carries a separator between its
// two dates. It leaves the input unchanged if a separator is already present
// or the string looks like a single open-ended date. Only the exact pattern
// "Month Year Month Year" (four tokens, 2nd and 4th numeric) gains a dash.
//
// This is a best-effort heuristic, not a date parser; a four-token single
// date whose 2nd and 4th tokens are numeric would be misjoined.
func NormalizeDates(dates string) string {
	if dates == "" {
		return ""
	}

	if strings.Contains(dates, "-") || strings.Contains(dates, "–") {
		return dates
	}

	lower := strings.ToLower(dates)
	for _, indicator := range openEndedIndicators {
		if strings.Contains(lower, indicator) {
			return dates
		}
	}

	parts := strings.Fields(dates)
	if len(parts) != 4 {
		return dates
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return dates
	}
	if _, err := strconv.Atoi(parts[3]); err != nil {
		return dates
	}

	return parts[0] + " " + parts[1] + " - " + parts[2] + " " + parts[3]
}
