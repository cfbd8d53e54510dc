package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"ZEIT_SERVICE_URL", "ZEIT_SERVICE_API_KEY", "ZEIT_BACKEND",
		"ZEIT_ADMIN_EMAIL", "ZEIT_DAILY_TARGET_MINUTES",
		"ZEIT_DB_DIR", "ZEIT_DB_FILENAME",
		"ZEIT_APP_TIMEOUT", "ZEIT_APP_VERBOSE",
	}
	for _, v := range vars {
		if old, ok := os.LookupEnv(v); ok {
			os.Unsetenv(v)
			t.Cleanup(func() { os.Setenv(v, old) })
		}
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, BackendREST, cfg.Service.Backend)
	assert.Equal(t, "alex@reitsport.de", cfg.Admin.Email)
	assert.Equal(t, 480, cfg.Tracking.DailyTargetMinutes)
	assert.Equal(t, "zeit.db", cfg.Database.Filename)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
	assert.False(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	os.Setenv("ZEIT_SERVICE_URL", "https://example.supabase.co")
	os.Setenv("ZEIT_ADMIN_EMAIL", "chef@example.de")
	os.Setenv("ZEIT_DAILY_TARGET_MINUTES", "420")
	os.Setenv("ZEIT_APP_TIMEOUT", "30s")
	os.Setenv("ZEIT_APP_VERBOSE", "true")
	t.Cleanup(func() { clearEnv(t) })

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "https://example.supabase.co", cfg.Service.URL)
	assert.Equal(t, "chef@example.de", cfg.Admin.Email)
	assert.Equal(t, 420, cfg.Tracking.DailyTargetMinutes)
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment_IgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	os.Setenv("ZEIT_DAILY_TARGET_MINUTES", "eight hours")
	os.Setenv("ZEIT_APP_TIMEOUT", "soon")
	t.Cleanup(func() { clearEnv(t) })

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 480, cfg.Tracking.DailyTargetMinutes)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "should require a service URL for the rest backend",
			mutate:    func(c *Config) { c.Service.URL = "" },
			wantField: "service.url",
		},
		{
			name:      "should reject an unknown backend",
			mutate:    func(c *Config) { c.Service.Backend = "oracle" },
			wantField: "service.backend",
		},
		{
			name: "should require an admin email",
			mutate: func(c *Config) {
				c.Service.URL = "https://example.supabase.co"
				c.Admin.Email = ""
			},
			wantField: "admin.email",
		},
		{
			name: "should require a positive daily target",
			mutate: func(c *Config) {
				c.Service.URL = "https://example.supabase.co"
				c.Tracking.DailyTargetMinutes = 0
			},
			wantField: "tracking.daily_target_minutes",
		},
		{
			name: "should require a database dir for the sqlite backend",
			mutate: func(c *Config) {
				c.Service.Backend = BackendSQLite
				c.Database.Dir = ""
			},
			wantField: "database.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestConfig_Validate_SQLiteBackendNeedsNoURL(t *testing.T) {
	cfg := NewConfig()
	cfg.Service.Backend = BackendSQLite
	cfg.Service.URL = ""

	assert.NoError(t, cfg.Validate())
}

func TestConfig_IsAdmin(t *testing.T) {
	cfg := NewConfig()
	cfg.Admin.Email = "chef@example.de"

	assert.True(t, cfg.IsAdmin("chef@example.de"))
	assert.False(t, cfg.IsAdmin("anna@example.de"))
	assert.False(t, cfg.IsAdmin(""))
}

func TestLoader_LoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[service]
url = "https://example.supabase.co"
api_key = "anon-key"

[admin]
email = "chef@example.de"

[tracking]
daily_target_minutes = 450
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewLoaderWithFile(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "https://example.supabase.co", cfg.Service.URL)
	assert.Equal(t, "anon-key", cfg.Service.APIKey)
	assert.Equal(t, "chef@example.de", cfg.Admin.Email)
	assert.Equal(t, 450, cfg.Tracking.DailyTargetMinutes)
	// Untouched values keep their defaults.
	assert.Equal(t, BackendREST, cfg.Service.Backend)
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	os.Setenv("ZEIT_SERVICE_URL", "https://example.supabase.co")
	t.Cleanup(func() { clearEnv(t) })

	cfg, err := NewLoaderWithFile(filepath.Join(t.TempDir(), "missing.toml")).Load()

	require.NoError(t, err)
	assert.Equal(t, "alex@reitsport.de", cfg.Admin.Email)
}

func TestLoader_MalformedFileFails(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[service\nbroken"), 0o644))

	_, err := NewLoaderWithFile(path).Load()

	assert.Error(t, err)
}

func TestLoader_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[service]
url = "https://file.supabase.co"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	os.Setenv("ZEIT_SERVICE_URL", "https://env.supabase.co")
	t.Cleanup(func() { clearEnv(t) })

	cfg, err := NewLoaderWithFile(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "https://env.supabase.co", cfg.Service.URL)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	clearEnv(t)
	url := "https://flag.supabase.co"
	target := 300

	cfg, err := NewLoaderWithFile(filepath.Join(t.TempDir(), "missing.toml")).
		LoadWithOverrides(&ConfigOverrides{
			ServiceURL:         &url,
			DailyTargetMinutes: &target,
		})

	require.NoError(t, err)
	assert.Equal(t, url, cfg.Service.URL)
	assert.Equal(t, target, cfg.Tracking.DailyTargetMinutes)
}
