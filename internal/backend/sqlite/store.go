// Package sqlite implements the data and auth contract on a local
// database file. It exists for development and testing, where running
// against the hosted service is impractical. Accounts created here are
// local only and never leave the machine.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RacerAlex69/Zeiterfassung/internal/backend/sqlite/migrations"
	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	apperrors "github.com/RacerAlex69/Zeiterfassung/internal/errors"

	_ "modernc.org/sqlite"
)

const entryColumns = `id, user_id, date, start_time, break_start, break_end, lunch_start, lunch_end, end_time, duration`

// Store implements the backend Service interface on a local database
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and brings its schema
// up to date. Use ":memory:" for a throwaway database in tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewServiceError("open database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, apperrors.NewServiceError("run migrations", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// CurrentUser returns the user of the active session, if any.
func (s *Store) CurrentUser(ctx context.Context) (*domain.User, error) {
	query := `
	SELECT users.id, users.email
	FROM sessions JOIN users ON sessions.user_id = users.id
	WHERE sessions.slot = 1`

	row := s.db.QueryRowContext(ctx, query)
	user, err := ScanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewAuthError("no active session", nil)
		}
		return nil, HandleDatabaseError("scan session", err)
	}
	return user, nil
}

// Login verifies the credentials against the local accounts table and
// records the session.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	query := `SELECT id, email FROM users WHERE email = ? AND password_hash = ?`

	row := s.db.QueryRowContext(ctx, query, email, hashPassword(password))
	user, err := ScanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewAuthError("login failed: invalid email or password", nil)
		}
		return nil, HandleDatabaseError("scan user", err)
	}

	if err := s.setSession(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a local account and logs it in.
func (s *Store) Register(ctx context.Context, email, password string) (*domain.User, error) {
	id, err := generateID()
	if err != nil {
		return nil, apperrors.NewServiceError("create account", err)
	}

	query := `INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, id, email, hashPassword(password)); err != nil {
		return nil, apperrors.NewAuthError(fmt.Sprintf("registration failed for %s", email), err)
	}

	user := &domain.User{ID: id, Email: email}
	if err := s.setSession(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the active session. Logging out without a session is
// not an error.
func (s *Store) Logout(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE slot = 1`); err != nil {
		return HandleDatabaseError("clear session", err)
	}
	return nil
}

func (s *Store) setSession(ctx context.Context, userID string) error {
	query := `
	INSERT INTO sessions (slot, user_id) VALUES (1, ?)
	ON CONFLICT(slot) DO UPDATE SET user_id = excluded.user_id, created_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return HandleDatabaseError("store session", err)
	}
	return nil
}

// Entries returns all entries owned by the given user, oldest first.
func (s *Store) Entries(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	query := `
	SELECT ` + entryColumns + `
	FROM time_entries
	WHERE user_id = ?
	ORDER BY date ASC`

	entries, err := QueryMultiple(ctx, s.db, query, ScanTimeEntries, "time entries", userID)
	if err != nil {
		return nil, err
	}
	return dereference(entries), nil
}

// AllEntries returns every entry in the database, oldest first.
func (s *Store) AllEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	query := `
	SELECT ` + entryColumns + `
	FROM time_entries
	ORDER BY date ASC`

	entries, err := QueryMultiple(ctx, s.db, query, ScanTimeEntries, "time entries")
	if err != nil {
		return nil, err
	}
	return dereference(entries), nil
}

// EntryByDate returns the single entry a user has for the given date.
func (s *Store) EntryByDate(ctx context.Context, userID, date string) (*domain.TimeEntry, error) {
	query := `
	SELECT ` + entryColumns + `
	FROM time_entries
	WHERE user_id = ? AND date = ?`

	return QuerySingle(ctx, s.db, query, ScanTimeEntry, "time entry", date, userID, date)
}

// CreateEntry inserts a new entry and returns it with its assigned id.
func (s *Store) CreateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	query := `
	INSERT INTO time_entries (user_id, date, start_time, break_start, break_end, lunch_start, lunch_end, end_time, duration)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, s.db, query,
		entry.UserID,
		entry.Date,
		nullable(entry.StartTime),
		nullable(entry.BreakStart),
		nullable(entry.BreakEnd),
		nullable(entry.LunchStart),
		nullable(entry.LunchEnd),
		nullable(entry.EndTime),
		nullable(entry.Duration),
	)
	if err != nil {
		return nil, err
	}

	entry.ID = formatID(id)
	return &entry, nil
}

// UpdateEntry overwrites an existing entry and returns the stored row.
func (s *Store) UpdateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	if entry.ID == "" {
		return nil, apperrors.NewInvalidInputError("id", entry.ID, "entry id is required for updates")
	}

	query := `
	UPDATE time_entries
	SET start_time = ?, break_start = ?, break_end = ?, lunch_start = ?, lunch_end = ?, end_time = ?, duration = ?
	WHERE id = ?`

	err := ExecuteWithRowsAffected(ctx, s.db, query, "time entry", entry.ID,
		nullable(entry.StartTime),
		nullable(entry.BreakStart),
		nullable(entry.BreakEnd),
		nullable(entry.LunchStart),
		nullable(entry.LunchEnd),
		nullable(entry.EndTime),
		nullable(entry.Duration),
		entry.ID,
	)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Users returns the account directory ordered by email.
func (s *Store) Users(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, email FROM users ORDER BY email ASC`

	users, err := QueryMultiple(ctx, s.db, query, ScanUsers, "users")
	if err != nil {
		return nil, err
	}

	result := make([]domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, *u)
	}
	return result, nil
}

func dereference(entries []*domain.TimeEntry) []domain.TimeEntry {
	result := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, *e)
	}
	return result
}

// nullable maps the domain's "unset" empty string to NULL so partially
// filled days do not store empty text.
func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
