package rest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// session holds the persisted access token and the identity it belongs to,
// so the client survives process restarts without a fresh login.
type session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

// loadSession reads the cached session from disk. Returns nil, nil if no
// session has been stored yet.
func loadSession(path string) (*session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var s session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return &s, nil
}

// saveSession writes the session to disk with 0600 permissions. Uses an
// atomic write (tmp + rename) to prevent corruption.
func saveSession(path string, s *session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// clearSession removes the stored session. A missing file is not an error.
func clearSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
