package aggregate

import (
	"time"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	"github.com/RacerAlex69/Zeiterfassung/internal/worktime"
)

// SameMonth reports whether the entry date falls in the same calendar month
// and year as the reference time. Dates that do not parse as YYYY-MM-DD are
// never in any month.
func SameMonth(date string, now time.Time) bool {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return false
	}
	return parsed.Year() == now.Year() && parsed.Month() == now.Month()
}

// SameWeek reports whether the entry date falls in the same Monday-started
// week as the reference time. A Sunday belongs to the week ending on it, not
// the following one. Unparsable dates are never in any week.
func SameWeek(date string, now time.Time) bool {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return false
	}
	ey, em, ed := startOfWeek(parsed).Date()
	ny, nm, nd := startOfWeek(now).Date()
	return ey == ny && em == nm && ed == nd
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	// Go's weekday: Sunday=0, Monday=1, ..., Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// FilterMonth keeps the entries dated in the same calendar month as now.
func FilterMonth(entries []domain.TimeEntry, now time.Time) []domain.TimeEntry {
	var filtered []domain.TimeEntry
	for _, entry := range entries {
		if SameMonth(entry.Date, now) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// FilterWeek keeps the entries dated in the same Monday-started week as now.
func FilterWeek(entries []domain.TimeEntry, now time.Time) []domain.TimeEntry {
	var filtered []domain.TimeEntry
	for _, entry := range entries {
		if SameWeek(entry.Date, now) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Incomplete returns all entries missing a start or an end time, regardless
// of their date. Such entries carry no minutes into any total but are still
// displayed.
func Incomplete(entries []domain.TimeEntry) []domain.TimeEntry {
	var incomplete []domain.TimeEntry
	for _, entry := range entries {
		if entry.IsIncomplete() {
			incomplete = append(incomplete, entry)
		}
	}
	return incomplete
}

// sumMinutes adds up the recomputed durations of the given entries.
// Incomplete entries contribute zero.
func sumMinutes(entries []domain.TimeEntry) int {
	total := 0
	for _, entry := range entries {
		total += worktime.ParseMinutes(entry.EffectiveDuration())
	}
	return total
}

// WeeklyTotal returns the worked minutes of the current Monday-started week.
// No weekly target is computed.
func WeeklyTotal(entries []domain.TimeEntry, now time.Time) int {
	return sumMinutes(FilterWeek(entries, now))
}
