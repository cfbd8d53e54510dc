package domain

import (
	"github.com/RacerAlex69/Zeiterfassung/internal/worktime"
)

// DateFormat is the calendar-date layout used on entries.
const DateFormat = "2006-01-02"

// TimeEntry represents one calendar-day time record for one user in the
// domain model. The clock-time fields are optional "HH:MM" strings; an
// empty string means the field has not been recorded yet. Duration is a
// derived "<H>h <M>min" string, present once both endpoints have been set.
type TimeEntry struct {
	ID         string
	UserID     string
	Date       string
	StartTime  string
	EndTime    string
	BreakStart string
	BreakEnd   string
	LunchStart string
	LunchEnd   string
	Duration   string
}

// NewTimeEntry creates an empty TimeEntry for the given user and date.
func NewTimeEntry(userID, date string) TimeEntry {
	return TimeEntry{
		UserID: userID,
		Date:   date,
	}
}

// IsComplete returns true if both the start and end time have been recorded.
func (e TimeEntry) IsComplete() bool {
	return e.StartTime != "" && e.EndTime != ""
}

// IsIncomplete returns true if the entry is missing its start or end time.
// A stale Duration left over from a prior edit does not make it complete.
func (e TimeEntry) IsIncomplete() bool {
	return !e.IsComplete()
}

// Field returns the current value of one of the six clock-time fields.
func (e TimeEntry) Field(field TimeField) string {
	switch field {
	case FieldStartTime:
		return e.StartTime
	case FieldEndTime:
		return e.EndTime
	case FieldBreakStart:
		return e.BreakStart
	case FieldBreakEnd:
		return e.BreakEnd
	case FieldLunchStart:
		return e.LunchStart
	case FieldLunchEnd:
		return e.LunchEnd
	default:
		return ""
	}
}

// WithField returns a copy of the entry with the given clock-time field set
// to value, recomputing Duration when both endpoints are present afterwards.
// The receiver is never mutated. Fields outside the closed TimeField set
// leave the entry unchanged.
func (e TimeEntry) WithField(field TimeField, value string) TimeEntry {
	switch field {
	case FieldStartTime:
		e.StartTime = value
	case FieldEndTime:
		e.EndTime = value
	case FieldBreakStart:
		e.BreakStart = value
	case FieldBreakEnd:
		e.BreakEnd = value
	case FieldLunchStart:
		e.LunchStart = value
	case FieldLunchEnd:
		e.LunchEnd = value
	default:
		return e
	}

	if e.IsComplete() {
		duration, err := worktime.Calculate(e.StartTime, e.BreakStart, e.BreakEnd, e.LunchStart, e.LunchEnd, e.EndTime)
		if err == nil {
			e.Duration = duration
		}
	}

	return e
}

// EffectiveDuration returns the duration string an aggregate may trust: the
// recomputed value for complete entries, and the empty string otherwise. A
// stored Duration is never authoritative on its own.
func (e TimeEntry) EffectiveDuration() string {
	if !e.IsComplete() {
		return ""
	}
	duration, err := worktime.Calculate(e.StartTime, e.BreakStart, e.BreakEnd, e.LunchStart, e.LunchEnd, e.EndTime)
	if err != nil {
		return ""
	}
	return duration
}
