package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Backend names selectable via configuration.
const (
	BackendREST   = "rest"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the time tracking client
type Config struct {
	Service     ServiceConfig     `toml:"service"`
	Admin       AdminConfig       `toml:"admin"`
	Tracking    TrackingConfig    `toml:"tracking"`
	Database    DatabaseConfig    `toml:"database"`
	Application ApplicationConfig `toml:"application"`
}

// ServiceConfig holds the connection settings for the hosted Data & Auth
// Service.
type ServiceConfig struct {
	URL     string `toml:"url" env:"ZEIT_SERVICE_URL"`
	APIKey  string `toml:"api_key" env:"ZEIT_SERVICE_API_KEY"`
	Backend string `toml:"backend" env:"ZEIT_BACKEND"`
}

// AdminConfig holds the single configured administrator address. There is
// no broader role model: this one email grants cross-user visibility.
type AdminConfig struct {
	Email string `toml:"email" env:"ZEIT_ADMIN_EMAIL"`
}

// TrackingConfig holds the aggregation settings
type TrackingConfig struct {
	DailyTargetMinutes int `toml:"daily_target_minutes" env:"ZEIT_DAILY_TARGET_MINUTES"`
}

// DatabaseConfig holds the local database settings used by the sqlite
// backend in development and testing
type DatabaseConfig struct {
	Dir      string `toml:"dir" env:"ZEIT_DB_DIR"`
	Filename string `toml:"filename" env:"ZEIT_DB_FILENAME"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"ZEIT_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"ZEIT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Backend: BackendREST,
		},
		Admin: AdminConfig{
			Email: "alex@reitsport.de",
		},
		Tracking: TrackingConfig{
			DailyTargetMinutes: 8 * 60,
		},
		Database: DatabaseConfig{
			Dir:      filepath.Join(xdg.DataHome, "zeiterfassung"),
			Filename: "zeit.db",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the local database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// IsAdmin reports whether the given email is the configured administrator
// address.
func (c *Config) IsAdmin(email string) bool {
	return email != "" && email == c.Admin.Email
}

// SessionFilePath returns the path where the client persists its session
// token between invocations.
func SessionFilePath() (string, error) {
	return xdg.StateFile("zeiterfassung/session.json")
}

// DefaultConfigFilePath returns the path of the TOML configuration file.
func DefaultConfigFilePath() (string, error) {
	return xdg.ConfigFile("zeiterfassung/config.toml")
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Service configuration
	if url := os.Getenv("ZEIT_SERVICE_URL"); url != "" {
		c.Service.URL = url
	}
	if key := os.Getenv("ZEIT_SERVICE_API_KEY"); key != "" {
		c.Service.APIKey = key
	}
	if backend := os.Getenv("ZEIT_BACKEND"); backend != "" {
		c.Service.Backend = backend
	}

	// Admin configuration
	if email := os.Getenv("ZEIT_ADMIN_EMAIL"); email != "" {
		c.Admin.Email = email
	}

	// Tracking configuration
	if target := os.Getenv("ZEIT_DAILY_TARGET_MINUTES"); target != "" {
		if n, err := strconv.Atoi(target); err == nil {
			c.Tracking.DailyTargetMinutes = n
		}
	}

	// Database configuration
	if dir := os.Getenv("ZEIT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("ZEIT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}

	// Application configuration
	if timeout := os.Getenv("ZEIT_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("ZEIT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate service configuration
	switch c.Service.Backend {
	case BackendREST:
		if c.Service.URL == "" {
			return &ConfigError{Field: "service.url", Message: "service URL is required for the rest backend"}
		}
	case BackendSQLite:
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	default:
		return &ConfigError{Field: "service.backend", Message: "backend must be one of: rest, sqlite"}
	}

	// Validate admin configuration
	if c.Admin.Email == "" {
		return &ConfigError{Field: "admin.email", Message: "administrator email cannot be empty"}
	}

	// Validate tracking configuration
	if c.Tracking.DailyTargetMinutes <= 0 {
		return &ConfigError{Field: "tracking.daily_target_minutes", Message: "daily target must be positive"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
