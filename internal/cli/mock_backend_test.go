package cli

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/RacerAlex69/Zeiterfassung/internal/config"
	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	apperrors "github.com/RacerAlex69/Zeiterfassung/internal/errors"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

const testAdminEmail = "chef@example.de"

// mockBackend is a hand-rolled in-memory backend for command tests.
type mockBackend struct {
	sessionUser *domain.User
	accounts    map[string]string
	directory   []domain.User
	entries     []domain.TimeEntry
	nextID      int
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		accounts: map[string]string{},
		nextID:   100,
	}
}

func (m *mockBackend) addUser(id, email, password string) *domain.User {
	user := domain.User{ID: id, Email: email}
	m.accounts[email] = password
	m.directory = append(m.directory, user)
	return &user
}

func (m *mockBackend) addEntry(entry domain.TimeEntry) domain.TimeEntry {
	m.nextID++
	entry.ID = fmt.Sprintf("%d", m.nextID)
	m.entries = append(m.entries, entry)
	return entry
}

func (m *mockBackend) CurrentUser(ctx context.Context) (*domain.User, error) {
	if m.sessionUser == nil {
		return nil, apperrors.NewAuthError("no active session", nil)
	}
	return m.sessionUser, nil
}

func (m *mockBackend) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if stored, ok := m.accounts[email]; !ok || stored != password {
		return nil, apperrors.NewAuthError("login failed: invalid email or password", nil)
	}
	for _, u := range m.directory {
		if u.Email == email {
			user := u
			m.sessionUser = &user
			return &user, nil
		}
	}
	return nil, apperrors.NewAuthError("login failed: invalid email or password", nil)
}

func (m *mockBackend) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if _, exists := m.accounts[email]; exists {
		return nil, apperrors.NewAuthError("registration failed", nil)
	}
	m.nextID++
	user := m.addUser(fmt.Sprintf("user-%d", m.nextID), email, password)
	m.sessionUser = user
	return user, nil
}

func (m *mockBackend) Logout(ctx context.Context) error {
	m.sessionUser = nil
	return nil
}

func (m *mockBackend) Entries(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	var own []domain.TimeEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			own = append(own, e)
		}
	}
	return own, nil
}

func (m *mockBackend) AllEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	return append([]domain.TimeEntry(nil), m.entries...), nil
}

func (m *mockBackend) EntryByDate(ctx context.Context, userID, date string) (*domain.TimeEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.Date == date {
			entry := e
			return &entry, nil
		}
	}
	return nil, apperrors.NewNotFoundError("time entry", date)
}

func (m *mockBackend) CreateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	created := m.addEntry(entry)
	return &created, nil
}

func (m *mockBackend) UpdateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	for i, e := range m.entries {
		if e.ID == entry.ID {
			m.entries[i] = entry
			return &entry, nil
		}
	}
	return nil, apperrors.NewNotFoundError("time entry", entry.ID)
}

func (m *mockBackend) Users(ctx context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), m.directory...), nil
}

func (m *mockBackend) Close() error {
	return nil
}

func setupTestApp(t *testing.T) (*App, *mockBackend) {
	t.Helper()

	mock := newMockBackend()
	cfg := config.NewConfig()
	cfg.Admin.Email = testAdminEmail

	tr := tracker.New(mock, cfg.Admin.Email, cfg.Tracking.DailyTargetMinutes)
	return NewApp(tr, cfg), mock
}

func today() string {
	return time.Now().Format(domain.DateFormat)
}
