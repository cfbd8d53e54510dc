// Package tracker holds the client-side session state and orchestrates
// all reads and writes against the data and auth backend. It owns the
// transition from unauthenticated to authenticated, keeps the visible
// entry set and today's entry in memory, and recomputes aggregates on
// demand. A failed backend call never corrupts the in-memory state.
package tracker

import (
	"context"
	"time"

	"github.com/RacerAlex69/Zeiterfassung/internal/aggregate"
	"github.com/RacerAlex69/Zeiterfassung/internal/backend"
	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	apperrors "github.com/RacerAlex69/Zeiterfassung/internal/errors"
	"github.com/RacerAlex69/Zeiterfassung/internal/logging"
	"github.com/RacerAlex69/Zeiterfassung/internal/report"
	"github.com/RacerAlex69/Zeiterfassung/internal/validation"
)

// State describes the session lifecycle
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// Tracker is the stateful client session
type Tracker struct {
	backend      backend.Service
	validator    *validation.EntryValidator
	adminEmail   string
	targetPerDay int

	// clock is replaceable in tests
	clock func() time.Time

	state   State
	user    *domain.User
	current *domain.TimeEntry
	entries []domain.TimeEntry
	users   []domain.User
}

// New creates an unauthenticated tracker on top of the given backend.
// adminEmail gets cross-user visibility; targetPerDay is the daily
// working-time target in minutes.
func New(svc backend.Service, adminEmail string, targetPerDay int) *Tracker {
	return &Tracker{
		backend:      svc,
		validator:    validation.NewEntryValidator(),
		adminEmail:   adminEmail,
		targetPerDay: targetPerDay,
		clock:        time.Now,
		state:        StateUnauthenticated,
	}
}

// State returns the current session state.
func (t *Tracker) State() State {
	return t.state
}

// User returns the authenticated user, or nil.
func (t *Tracker) User() *domain.User {
	return t.user
}

// IsAdmin reports whether the authenticated user is the administrator.
func (t *Tracker) IsAdmin() bool {
	return t.user != nil && t.user.Email == t.adminEmail
}

// CurrentEntry returns today's entry for the authenticated user, or nil.
func (t *Tracker) CurrentEntry() *domain.TimeEntry {
	return t.current
}

// Entries returns the visible entry set: the user's own entries, or all
// entries for the administrator.
func (t *Tracker) Entries() []domain.TimeEntry {
	return t.entries
}

// Users returns the account directory. Empty unless the administrator
// is signed in.
func (t *Tracker) Users() []domain.User {
	return t.users
}

// Today returns the current date in entry format.
func (t *Tracker) Today() string {
	return t.clock().Format(domain.DateFormat)
}

// Resume restores a previous session if the backend still has one.
func (t *Tracker) Resume(ctx context.Context) error {
	user, err := t.backend.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return t.initialize(ctx, user)
}

// Login authenticates with the given credentials and loads the session.
func (t *Tracker) Login(ctx context.Context, email, password string) error {
	if err := t.validator.ValidateCredentials(email, password); err != nil {
		return err
	}

	user, err := t.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return t.initialize(ctx, user)
}

// Register creates a new account and loads the session.
func (t *Tracker) Register(ctx context.Context, email, password string) error {
	if err := t.validator.ValidateCredentials(email, password); err != nil {
		return err
	}

	user, err := t.backend.Register(ctx, email, password)
	if err != nil {
		return err
	}
	return t.initialize(ctx, user)
}

// Logout ends the session and drops all in-memory state.
func (t *Tracker) Logout(ctx context.Context) error {
	if err := t.backend.Logout(ctx); err != nil {
		return err
	}

	t.state = StateUnauthenticated
	t.user = nil
	t.current = nil
	t.entries = nil
	t.users = nil
	return nil
}

// initialize loads everything the authenticated view needs. Any failure
// leaves the tracker unauthenticated.
func (t *Tracker) initialize(ctx context.Context, user *domain.User) error {
	// Ensure today's row exists first so the visible list includes it.
	current, err := t.fetchOrCreateToday(ctx, user)
	if err != nil {
		return err
	}

	entries, err := t.fetchVisible(ctx, user)
	if err != nil {
		return err
	}

	var users []domain.User
	if user.Email == t.adminEmail {
		users, err = t.backend.Users(ctx)
		if err != nil {
			return err
		}
	}

	t.state = StateAuthenticated
	t.user = user
	t.entries = entries
	t.current = current
	t.users = users
	return nil
}

func (t *Tracker) fetchVisible(ctx context.Context, user *domain.User) ([]domain.TimeEntry, error) {
	if user.Email == t.adminEmail {
		return t.backend.AllEntries(ctx)
	}
	return t.backend.Entries(ctx, user.ID)
}

// fetchOrCreateToday guarantees a row exists for the current date, so
// field updates always have a record to merge into.
func (t *Tracker) fetchOrCreateToday(ctx context.Context, user *domain.User) (*domain.TimeEntry, error) {
	today := t.clock().Format(domain.DateFormat)

	entry, err := t.backend.EntryByDate(ctx, user.ID, today)
	if err == nil {
		return entry, nil
	}
	if !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	return t.backend.CreateEntry(ctx, domain.NewTimeEntry(user.ID, today))
}

// UpdateField records a clock time on today's entry. The update merges
// the new value into the current record, recomputes the duration and
// persists the full merged record. On success the in-memory entry is
// replaced and the visible list refreshed; on failure nothing changes.
func (t *Tracker) UpdateField(ctx context.Context, field domain.TimeField, value string) error {
	if t.state != StateAuthenticated || t.current == nil {
		return apperrors.NewAuthError("not signed in", nil)
	}

	if err := t.validator.ValidateFieldUpdate(field, value); err != nil {
		return err
	}

	merged := t.current.WithField(field, value)

	persisted, err := t.backend.UpdateEntry(ctx, merged)
	if err != nil {
		return err
	}
	t.current = persisted

	// The write went through; a failed refresh only means the list is
	// one edit behind.
	entries, err := t.fetchVisible(ctx, t.user)
	if err != nil {
		logging.Debugf("refresh after update failed: %v", err)
		return nil
	}
	t.entries = entries
	return nil
}

// Refresh re-fetches the visible entry set. The prior set is kept on
// failure.
func (t *Tracker) Refresh(ctx context.Context) error {
	if t.state != StateAuthenticated {
		return apperrors.NewAuthError("not signed in", nil)
	}

	entries, err := t.fetchVisible(ctx, t.user)
	if err != nil {
		return err
	}
	t.entries = entries
	return nil
}

// MonthlySummary aggregates the visible entries for the current month.
func (t *Tracker) MonthlySummary() aggregate.MonthlySummary {
	return aggregate.Monthly(t.entries, t.clock(), t.targetPerDay)
}

// WeeklyTotalMinutes sums the visible entries for the current week.
func (t *Tracker) WeeklyTotalMinutes() int {
	return aggregate.WeeklyTotal(t.entries, t.clock())
}

// IncompleteEntries returns the visible entries still missing a start
// or end time.
func (t *Tracker) IncompleteEntries() []domain.TimeEntry {
	return aggregate.Incomplete(t.entries)
}

// UserSummaries returns the per-user monthly totals for the
// administrator view.
func (t *Tracker) UserSummaries() []aggregate.UserSummary {
	return aggregate.UserSummaries(t.entries, t.users, t.clock())
}

// ExportMonthly renders the current month's visible entries as CSV. The
// administrator's export carries the owner id column.
func (t *Tracker) ExportMonthly() (report.Report, error) {
	return report.Monthly(t.entries, t.clock(), t.IsAdmin())
}

// ExportForUser renders a single employee's current-month report with
// the signature line. Admin only.
func (t *Tracker) ExportForUser(userID string) (report.Report, error) {
	if !t.IsAdmin() {
		return report.Report{}, apperrors.NewAuthError("per-user exports require the administrator account", nil)
	}
	return report.ForUser(t.entries, userID, t.clock())
}
