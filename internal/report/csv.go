package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/RacerAlex69/Zeiterfassung/internal/aggregate"
	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
)

// signatureLine is appended to a single-user monthly report so the printed
// sheet can be signed by the employee.
const signatureLine = "Unterschrift Mitarbeiter: ____________________"

// header holds the fixed German column names. Column order matters:
// downstream consumers of the exported file depend on it.
var header = []string{
	"Datum",
	"Startzeit",
	"Frühstücksbeginn",
	"Frühstücksende",
	"Mittagsbeginn",
	"Mittagsende",
	"Endzeit",
	"Arbeitszeit",
}

// Report is a rendered CSV artifact together with its suggested filename.
type Report struct {
	Filename string
	Content  []byte
}

// Monthly renders all given entries as a CSV report. withUserID adds a
// leading Nutzer-ID column for the admin's multi-user view. Unset clock
// times render as empty strings; the worked time column carries the
// recomputed duration, never a stale stored value.
func Monthly(entries []domain.TimeEntry, now time.Time, withUserID bool) (Report, error) {
	content, err := render(entries, withUserID, false)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Filename: fmt.Sprintf("Monatsreport_%s.csv", now.Format("2006_01")),
		Content:  content,
	}, nil
}

// ForUser renders one user's current-month entries as a signed monthly
// report. Entries of other users or other months are filtered out, and a
// signature line follows the data after a blank line.
func ForUser(entries []domain.TimeEntry, userID string, now time.Time) (Report, error) {
	var own []domain.TimeEntry
	for _, entry := range entries {
		if entry.UserID == userID && aggregate.SameMonth(entry.Date, now) {
			own = append(own, entry)
		}
	}

	content, err := render(own, false, true)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Filename: fmt.Sprintf("%s_Monatsreport_%s.csv", userID, now.Format("2006_01")),
		Content:  content,
	}, nil
}

// render serializes entries into CSV. Clock times and dates cannot contain
// commas, so the writer never needs to quote anything.
func render(entries []domain.TimeEntry, withUserID bool, signed bool) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	head := header
	if withUserID {
		head = append([]string{"Nutzer-ID"}, header...)
	}
	if err := writer.Write(head); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range entries {
		row := []string{
			entry.Date,
			entry.StartTime,
			entry.BreakStart,
			entry.BreakEnd,
			entry.LunchStart,
			entry.LunchEnd,
			entry.EndTime,
			entry.EffectiveDuration(),
		}
		if withUserID {
			row = append([]string{entry.UserID}, row...)
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if signed {
		if err := writer.Write([]string{""}); err != nil {
			return nil, fmt.Errorf("failed to write separator line: %w", err)
		}
		if err := writer.Write([]string{signatureLine}); err != nil {
			return nil, fmt.Errorf("failed to write signature line: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}
