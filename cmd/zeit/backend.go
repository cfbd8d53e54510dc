package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/RacerAlex69/Zeiterfassung/internal/backend"
	"github.com/RacerAlex69/Zeiterfassung/internal/backend/rest"
	"github.com/RacerAlex69/Zeiterfassung/internal/backend/sqlite"
	"github.com/RacerAlex69/Zeiterfassung/internal/config"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// BackendFactory creates backend instances based on environment
type BackendFactory struct {
	env Environment
	cfg *config.Config
}

// NewBackendFactory creates a new backend factory for the given environment
func NewBackendFactory(env Environment, cfg *config.Config) *BackendFactory {
	return &BackendFactory{env: env, cfg: cfg}
}

// CreateBackend creates a backend instance based on the current environment.
// Production talks to the hosted service; development and testing run on
// a local database.
func (bf *BackendFactory) CreateBackend() (backend.Service, error) {
	switch bf.env {
	case Development:
		return bf.createDevelopmentBackend()
	case Testing:
		return bf.createTestingBackend()
	case Production:
		return bf.createProductionBackend()
	default:
		return bf.createProductionBackend()
	}
}

// createDevelopmentBackend uses a local database file
func (bf *BackendFactory) createDevelopmentBackend() (backend.Service, error) {
	store, err := sqlite.New(bf.cfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return store, nil
}

// createTestingBackend uses an in-memory database
func (bf *BackendFactory) createTestingBackend() (backend.Service, error) {
	store, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing database: %w", err)
	}
	return store, nil
}

// createProductionBackend connects to the hosted data and auth service.
// ZEIT_BACKEND=sqlite forces the local database even in production mode.
func (bf *BackendFactory) createProductionBackend() (backend.Service, error) {
	if bf.cfg.Service.Backend == config.BackendSQLite {
		return bf.createDevelopmentBackend()
	}

	sessionPath, err := config.SessionFilePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session file path: %w", err)
	}

	client, err := rest.New(bf.cfg.Service.URL, bf.cfg.Service.APIKey, sessionPath, newLogger(bf.cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize service client: %w", err)
	}
	return client, nil
}

// newLogger builds the request logger. Silent unless verbose output is
// enabled.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.Application.Verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("ZEIT_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		return Production
	}
}
