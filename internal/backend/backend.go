// Package backend defines the contract against the Data & Auth Service
// that owns persistence, authentication and cross-session consistency.
// The production implementation talks to the hosted service over REST;
// a local sqlite implementation stands in for development and testing.
package backend

import (
	"context"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
)

// Service defines the interface for all data and auth operations
type Service interface {
	// Session operations
	CurrentUser(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error

	// Entry operations
	Entries(ctx context.Context, userID string) ([]domain.TimeEntry, error)
	AllEntries(ctx context.Context) ([]domain.TimeEntry, error)
	EntryByDate(ctx context.Context, userID, date string) (*domain.TimeEntry, error)
	CreateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error)

	// Directory operations
	Users(ctx context.Context) ([]domain.User, error)

	// Utility
	Close() error
}
