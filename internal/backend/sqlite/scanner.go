package sqlite

import (
	"database/sql"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*domain.TimeEntry, error) {
	entry := &domain.TimeEntry{}
	var id int64
	var start, breakStart, breakEnd, lunchStart, lunchEnd, end, duration sql.NullString

	err := scanner.Scan(
		&id,
		&entry.UserID,
		&entry.Date,
		&start,
		&breakStart,
		&breakEnd,
		&lunchStart,
		&lunchEnd,
		&end,
		&duration,
	)
	if err != nil {
		return nil, err
	}

	entry.ID = formatID(id)
	entry.StartTime = start.String
	entry.BreakStart = breakStart.String
	entry.BreakEnd = breakEnd.String
	entry.LunchStart = lunchStart.String
	entry.LunchEnd = lunchEnd.String
	entry.EndTime = end.String
	entry.Duration = duration.String

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*domain.User, error) {
	user := &domain.User{}
	err := scanner.Scan(&user.ID, &user.Email)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ScanUsers scans multiple users from database rows
func ScanUsers(rows Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		user, err := ScanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
