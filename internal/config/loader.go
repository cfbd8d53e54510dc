package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader reading the default TOML
// config file location.
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// NewLoaderWithFile creates a loader reading a specific TOML config file.
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from the config file
	if err := l.loadFromFile(); err != nil {
		return nil, err
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFromFile merges the TOML config file into the configuration. A
// missing file is not an error; a malformed one is.
func (l *Loader) loadFromFile() error {
	path := l.filePath
	if path == "" {
		defaultPath, err := DefaultConfigFilePath()
		if err != nil {
			return fmt.Errorf("resolving config file path: %w", err)
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, l.config); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Service overrides
	ServiceURL    *string
	ServiceAPIKey *string
	Backend       *string

	// Admin overrides
	AdminEmail *string

	// Tracking overrides
	DailyTargetMinutes *int

	// Database overrides
	DBDir      *string
	DBFilename *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	// Load base configuration without final validation so overrides can
	// still repair an incomplete environment.
	if err := l.loadFromFile(); err != nil {
		return nil, err
	}
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(l.config, overrides)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ApplyOverrides applies command line overrides to an already loaded
// configuration and re-validates it.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) error {
	applyOverrides(c, overrides)
	return c.Validate()
}

// applyOverrides applies command line overrides to the configuration
func applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.ServiceURL != nil {
		config.Service.URL = *overrides.ServiceURL
	}
	if overrides.ServiceAPIKey != nil {
		config.Service.APIKey = *overrides.ServiceAPIKey
	}
	if overrides.Backend != nil {
		config.Service.Backend = *overrides.Backend
	}
	if overrides.AdminEmail != nil {
		config.Admin.Email = *overrides.AdminEmail
	}
	if overrides.DailyTargetMinutes != nil {
		config.Tracking.DailyTargetMinutes = *overrides.DailyTargetMinutes
	}
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
