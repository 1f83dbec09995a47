// Package dataset loads the comparison run's inputs: the historical export
// CSVs and the JSON side-score sources for the current population.  All
// per-record coercions are silently safe — a malformed field becomes 0 or
// "absent", and a single bad record never aborts a load.
package dataset

import (
	"strconv"
	"strings"
)

// parseFloat parses a numeric field.  Empty or malformed values report
// absence rather than an error.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// floatOrZero parses a numeric field, coercing empty or malformed values to
// zero.
func floatOrZero(s string) float64 {
	v, _ := parseFloat(s)
	return v
}

// intOrZero parses an integral count field, accepting float renderings
// ("12.0") and coercing empty or malformed values to zero.
func intOrZero(s string) int {
	v, ok := parseFloat(s)
	if !ok {
		return 0
	}
	return int(v)
}
