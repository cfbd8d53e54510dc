package aggregate

import (
	"time"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	"github.com/RacerAlex69/Zeiterfassung/internal/worktime"
)

// MonthlySummary holds the aggregated totals of the current calendar month.
// The target counts one target day per entry present in the month, not per
// calendar day: days without an entry contribute to neither side.
type MonthlySummary struct {
	EntryCount    int
	TotalMinutes  int
	TargetMinutes int
	DiffMinutes   int
}

// FormattedTotal returns the monthly total as "<H>h <M>min".
func (s MonthlySummary) FormattedTotal() string {
	return worktime.FormatMinutes(s.TotalMinutes)
}

// FormattedDiff returns the difference against the target with an explicit
// leading "+" when non-negative.
func (s MonthlySummary) FormattedDiff() string {
	return worktime.FormatSignedMinutes(s.DiffMinutes)
}

// Monthly aggregates the visible entries for the calendar month of now.
// targetPerDay is the daily target in minutes; every month-filtered entry
// counts one target day, complete or not, while only complete entries
// contribute worked minutes.
func Monthly(entries []domain.TimeEntry, now time.Time, targetPerDay int) MonthlySummary {
	monthEntries := FilterMonth(entries, now)
	total := sumMinutes(monthEntries)
	target := targetPerDay * len(monthEntries)

	return MonthlySummary{
		EntryCount:    len(monthEntries),
		TotalMinutes:  total,
		TargetMinutes: target,
		DiffMinutes:   total - target,
	}
}

// UserSummary is one user's monthly contribution, joined to the directory.
type UserSummary struct {
	UserID       string
	Email        string
	TotalMinutes int
}

// FormattedTotal returns the user's monthly total as "<H>h <M>min".
func (s UserSummary) FormattedTotal() string {
	return worktime.FormatMinutes(s.TotalMinutes)
}

// UserSummaries groups all entries of the current calendar month by user,
// sums each user's worked minutes, and joins the user ids against the
// directory. Users without a contribution this month are dropped. The
// result keeps the directory's natural order.
func UserSummaries(entries []domain.TimeEntry, users []domain.User, now time.Time) []UserSummary {
	totals := make(map[string]int)
	for _, entry := range FilterMonth(entries, now) {
		totals[entry.UserID] += worktime.ParseMinutes(entry.EffectiveDuration())
	}

	var summaries []UserSummary
	for _, user := range users {
		total, ok := totals[user.ID]
		if !ok || total == 0 {
			continue
		}
		summaries = append(summaries, UserSummary{
			UserID:       user.ID,
			Email:        user.Email,
			TotalMinutes: total,
		})
	}
	return summaries
}
