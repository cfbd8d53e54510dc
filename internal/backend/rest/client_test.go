package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	apperrors "github.com/RacerAlex69/Zeiterfassung/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	client, err := New(server.URL, "anon-key", sessionPath, nil)
	require.NoError(t, err)
	return client
}

func TestClient_CurrentUser_NoSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected without a session")
	}))

	_, err := client.CurrentUser(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAuth))
}

func TestClient_Login(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "anna@example.de", creds["email"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-123",
			"token_type":   "bearer",
			"user":         map[string]string{"id": "user-1", "email": "anna@example.de"},
		})
	})

	client := newTestClient(t, mux)

	user, err := client.Login(context.Background(), "anna@example.de", "geheim")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "anna@example.de", user.Email)

	// The session is persisted for the next invocation.
	stored, err := loadSession(client.sessionPath)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "token-123", stored.AccessToken)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	}))

	_, err := client.Login(context.Background(), "anna@example.de", "falsch")

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAuth))
}

func TestClient_CurrentUser_WithStoredSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "email": "anna@example.de"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, saveSession(sessionPath, &session{
		AccessToken: "token-123",
		UserID:      "user-1",
		Email:       "anna@example.de",
	}))

	client, err := New(server.URL, "anon-key", sessionPath, nil)
	require.NoError(t, err)

	user, err := client.CurrentUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "anna@example.de", user.Email)
}

func TestClient_Entries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/time_entries", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":        17,
				"user_id":   "user-1",
				"date":      "2025-03-10",
				"startTime": "09:00",
				"endTime":   "17:00",
				"duration":  "8h 0min",
			},
			{
				"id":         18,
				"user_id":    "user-1",
				"date":       "2025-03-11",
				"startTime":  "08:30",
				"breakStart": nil,
			},
		})
	})

	client := newTestClient(t, mux)

	entries, err := client.Entries(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "17", entries[0].ID)
	assert.Equal(t, "8h 0min", entries[0].Duration)
	assert.Equal(t, "18", entries[1].ID)
	assert.Empty(t, entries[1].EndTime)
	assert.Empty(t, entries[1].BreakStart)
}

func TestClient_EntryByDate_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]interface{}{})
	}))

	_, err := client.EntryByDate(context.Background(), "user-1", "2025-03-10")

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestClient_CreateEntry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/time_entries", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.NotContains(t, payload, "id")
		assert.Equal(t, "user-1", payload["user_id"])
		assert.Equal(t, "2025-03-10", payload["date"])

		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 42, "user_id": "user-1", "date": "2025-03-10"},
		})
	})

	client := newTestClient(t, mux)

	created, err := client.CreateEntry(context.Background(), domain.NewTimeEntry("user-1", "2025-03-10"))

	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)
}

func TestClient_UpdateEntry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/time_entries", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.42", r.URL.Query().Get("id"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.NotContains(t, payload, "id")
		assert.Equal(t, "17:00", payload["endTime"])

		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":        42,
				"user_id":   "user-1",
				"date":      "2025-03-10",
				"startTime": "09:00",
				"endTime":   "17:00",
				"duration":  "8h 0min",
			},
		})
	})

	client := newTestClient(t, mux)

	entry := domain.TimeEntry{
		ID:        "42",
		UserID:    "user-1",
		Date:      "2025-03-10",
		StartTime: "09:00",
		EndTime:   "17:00",
		Duration:  "8h 0min",
	}
	updated, err := client.UpdateEntry(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, "8h 0min", updated.Duration)
}

func TestClient_UpdateEntry_RequiresID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected without an id")
	}))

	_, err := client.UpdateEntry(context.Background(), domain.TimeEntry{UserID: "user-1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
}

func TestClient_Users(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "user-1", "email": "anna@example.de"},
			{"id": "user-2", "email": "ben@example.de"},
		})
	}))

	users, err := client.Users(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "anna@example.de", users[0].Email)
	assert.Equal(t, "ben@example.de", users[1].Email)
}

func TestClient_Logout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, saveSession(sessionPath, &session{AccessToken: "token-123"}))

	client, err := New(server.URL, "anon-key", sessionPath, nil)
	require.NoError(t, err)

	require.NoError(t, client.Logout(context.Background()))

	stored, err := loadSession(sessionPath)
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = client.CurrentUser(context.Background())
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAuth))
}
