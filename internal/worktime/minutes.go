package worktime

import (
	"regexp"
	"strconv"
)

// durationPattern is the grammar for formatted durations: "<int>h <int>min"
// with tolerant whitespace between the tokens.
var durationPattern = regexp.MustCompile(`^\s*(\d+)h\s+(\d+)min\s*$`)

// ParseMinutes recovers the integer minute count from a formatted duration
// string. It is the exact inverse of FormatMinutes for every non-negative
// duration the formatter can produce. Absent, empty, or unparsable strings
// yield 0; a malformed duration is never an error, only a zero contribution.
func ParseMinutes(s string) int {
	matches := durationPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0
	}

	hours, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0
	}

	return hours*60 + minutes
}
