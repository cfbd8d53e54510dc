package worktime

import (
	"fmt"
	"math"
	"time"
)

// clockFormat is the layout for the clock-time strings stored on an entry.
const clockFormat = "15:04"

// Calculate computes the worked duration for a day from its clock times and
// returns it formatted as "<H>h <M>min". The start and end times are
// required; each break pair (breakfast and lunch) is only subtracted when
// both of its endpoints are present.
//
// Negative results (end before start, or breaks exceeding the work span) are
// not clamped; they propagate as negative components in the formatted
// string. Callers that need validation must do it before storing the times.
func Calculate(start, breakStart, breakEnd, lunchStart, lunchEnd, end string) (string, error) {
	startMin, err := clockMinutes(start)
	if err != nil {
		return "", fmt.Errorf("parsing start time: %w", err)
	}
	endMin, err := clockMinutes(end)
	if err != nil {
		return "", fmt.Errorf("parsing end time: %w", err)
	}

	total := endMin - startMin
	breakfast, err := spanMinutes(breakStart, breakEnd)
	if err != nil {
		return "", fmt.Errorf("parsing breakfast break: %w", err)
	}
	lunch, err := spanMinutes(lunchStart, lunchEnd)
	if err != nil {
		return "", fmt.Errorf("parsing lunch break: %w", err)
	}

	return FormatMinutes(total - breakfast - lunch), nil
}

// FormatMinutes renders a minute count as "<H>h <M>min". Hours use floor
// division so that positive durations always round down into the hour
// component; for negative counts both components carry the sign.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dmin", floorDiv(minutes, 60), minutes%60)
}

// FormatSignedMinutes renders a minute count like FormatMinutes but with an
// explicit leading "+" when the count is non-negative. Used for the
// difference against the monthly target.
func FormatSignedMinutes(minutes int) string {
	sign := ""
	if minutes >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%dh %dmin", sign, floorDiv(minutes, 60), minutes%60)
}

// clockMinutes parses an "HH:MM" clock time into minutes since midnight on
// an arbitrary common reference date.
func clockMinutes(s string) (int, error) {
	t, err := time.Parse(clockFormat, s)
	if err != nil {
		return 0, err
	}
	ref := time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(math.Round(t.Sub(ref).Minutes())), nil
}

// spanMinutes returns the length of an optional break pair in minutes, or 0
// when either endpoint is missing.
func spanMinutes(from, to string) (int, error) {
	if from == "" || to == "" {
		return 0, nil
	}
	fromMin, err := clockMinutes(from)
	if err != nil {
		return 0, err
	}
	toMin, err := clockMinutes(to)
	if err != nil {
		return 0, err
	}
	return toMin - fromMin, nil
}

// floorDiv divides a by b rounding toward negative infinity. Go's integer
// division truncates toward zero, which differs for negative dividends.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
