package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	apperrors "github.com/RacerAlex69/Zeiterfassung/internal/errors"
)

// Client talks to the hosted Data & Auth Service over its REST interface.
// It implements backend.Service. The access token obtained on login is
// persisted to the session file so subsequent invocations resume the
// session without new credentials.
type Client struct {
	baseURL     string
	apiKey      string
	sessionPath string
	httpClient  *http.Client
	logger      *slog.Logger
	session     *session
}

// New creates a new client for the service at baseURL. sessionPath is the
// file where the session token is cached between runs.
func New(baseURL, apiKey, sessionPath string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		sessionPath: sessionPath,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	stored, err := loadSession(sessionPath)
	if err != nil {
		return nil, err
	}
	c.session = stored

	return c, nil
}

// Close implements backend.Service. The client holds no connections that
// outlive individual requests.
func (c *Client) Close() error {
	return nil
}

// doRequest performs one HTTP request against the service, retrying
// transport errors and retryable statuses (429, 5xx) with exponential
// backoff. The request is rebuilt per attempt so the body can be resent.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}, prefer string) ([]byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		payload = data
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	const maxRetries = 3
	requestStart := time.Now()

	var resp *http.Response
	for attempt := 0; attempt <= maxRetries; attempt++ {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if prefer != "" {
			req.Header.Set("Prefer", prefer)
		}
		if c.session != nil && c.session.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
		} else {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		c.logger.Debug("service request", "method", method, "path", path)

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if attempt == maxRetries {
				c.logger.Error("service transport error", "method", method, "path", path, "error", err, "elapsed", time.Since(requestStart))
				return nil, fmt.Errorf("sending request: %w", err)
			}
			c.logger.Debug("service transport error, retrying", "method", method, "path", path, "attempt", attempt+1, "error", err)
			time.Sleep(backoff(attempt))
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				c.logger.Error("service request failed after retries", "method", method, "path", path, "status", resp.StatusCode, "attempts", maxRetries+1)
				return nil, fmt.Errorf("service returned status %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.logger.Debug("service retryable error", "method", method, "path", path, "status", resp.StatusCode, "attempt", attempt+1)
			time.Sleep(backoff(attempt))
			continue
		}
		break
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("service response", "method", method, "path", path, "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(requestStart))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{status: resp.StatusCode, body: respBody}
	}

	return respBody, nil
}

func backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

// statusError carries a non-2xx response so callers can map it.
type statusError struct {
	status int
	body   []byte
}

func (e *statusError) Error() string {
	var parsed errorResponse
	if err := json.Unmarshal(e.body, &parsed); err == nil && parsed.text() != "" {
		return fmt.Sprintf("service error (status %d): %s", e.status, parsed.text())
	}
	return fmt.Sprintf("service error (status %d)", e.status)
}

// CurrentUser returns the identity of the stored session, re-validating
// the token against the service. Without a stored session there is no
// authenticated identity.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	if c.session == nil || c.session.AccessToken == "" {
		return nil, apperrors.NewAuthError("no active session", nil)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/auth/v1/user", nil, nil, "")
	if err != nil {
		if isAuthStatus(err) {
			return nil, apperrors.NewAuthError("session is no longer valid", err)
		}
		return nil, apperrors.NewServiceError("session lookup", err)
	}

	var wire wireUser
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, apperrors.NewServiceError("session lookup", err)
	}

	user := wire.toDomain()
	return &user, nil
}

// Login authenticates with email and password and stores the returned
// access token for subsequent calls and invocations.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	query := url.Values{"grant_type": {"password"}}
	payload := map[string]string{"email": email, "password": password}

	// Credentials must not ride on a stale token.
	c.session = nil

	body, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/token", query, payload, "")
	if err != nil {
		if isAuthStatus(err) {
			return nil, apperrors.NewAuthError("login failed: invalid email or password", err)
		}
		return nil, apperrors.NewServiceError("login", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, apperrors.NewServiceError("login", err)
	}
	if token.AccessToken == "" {
		return nil, apperrors.NewAuthError("login failed: no access token returned", nil)
	}

	c.session = &session{
		AccessToken: token.AccessToken,
		UserID:      token.User.ID,
		Email:       token.User.Email,
	}
	if err := saveSession(c.sessionPath, c.session); err != nil {
		// The login itself succeeded; the session just won't survive
		// this process.
		c.logger.Warn("could not persist session", "error", err)
	}

	user := token.User.toDomain()
	return &user, nil
}

// Register creates a new account with the given credentials.
func (c *Client) Register(ctx context.Context, email, password string) (*domain.User, error) {
	payload := map[string]string{"email": email, "password": password}

	body, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/signup", nil, payload, "")
	if err != nil {
		if isAuthStatus(err) {
			return nil, apperrors.NewAuthError("registration failed", err)
		}
		return nil, apperrors.NewServiceError("registration", err)
	}

	var signup signupResponse
	if err := json.Unmarshal(body, &signup); err != nil {
		return nil, apperrors.NewServiceError("registration", err)
	}

	user := signup.toDomain()
	return &user, nil
}

// Logout invalidates the session on the service (best effort) and removes
// the stored token.
func (c *Client) Logout(ctx context.Context) error {
	if c.session != nil && c.session.AccessToken != "" {
		if _, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, ""); err != nil {
			c.logger.Debug("remote logout failed", "error", err)
		}
	}
	c.session = nil
	return clearSession(c.sessionPath)
}

// Entries returns all entries owned by the given user.
func (c *Client) Entries(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	query := url.Values{
		"select":  {"*"},
		"user_id": {"eq." + userID},
		"order":   {"date.asc"},
	}
	return c.queryEntries(ctx, query, "fetch entries")
}

// AllEntries returns every entry across all users. The service enforces
// that only the administrator's token may read foreign rows.
func (c *Client) AllEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {"date.asc"},
	}
	return c.queryEntries(ctx, query, "fetch all entries")
}

// EntryByDate returns the single entry of a user on an exact date, or a
// not-found error when no entry exists yet.
func (c *Client) EntryByDate(ctx context.Context, userID, date string) (*domain.TimeEntry, error) {
	query := url.Values{
		"select":  {"*"},
		"user_id": {"eq." + userID},
		"date":    {"eq." + date},
	}

	entries, err := c.queryEntries(ctx, query, "fetch entry by date")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError("time entry", date)
	}
	return &entries[0], nil
}

// CreateEntry inserts a new entry and returns the stored record including
// its assigned id.
func (c *Client) CreateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	wire := fromDomain(entry)
	wire.ID = "" // assigned by the service

	body, err := c.doRequest(ctx, http.MethodPost, "/rest/v1/time_entries", nil, wire, "return=representation")
	if err != nil {
		return nil, apperrors.NewServiceError("create entry", err)
	}
	return singleEntry(body, "create entry")
}

// UpdateEntry persists the full merged record under its id and returns the
// stored result. Last write wins; there is no optimistic concurrency.
func (c *Client) UpdateEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	if entry.ID == "" {
		return nil, apperrors.NewInvalidInputError("id", entry.ID, "entry id is required for updates")
	}

	query := url.Values{"id": {"eq." + entry.ID}}
	wire := fromDomain(entry)
	wire.ID = "" // the row is addressed by the query, not the body

	body, err := c.doRequest(ctx, http.MethodPatch, "/rest/v1/time_entries", query, wire, "return=representation")
	if err != nil {
		return nil, apperrors.NewServiceError("update entry", err)
	}
	return singleEntry(body, "update entry")
}

// Users returns the directory of (id, email) pairs in the service's
// natural order.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	query := url.Values{"select": {"id,email"}}

	body, err := c.doRequest(ctx, http.MethodGet, "/rest/v1/users", query, nil, "")
	if err != nil {
		return nil, apperrors.NewServiceError("fetch directory", err)
	}

	var wires []wireUser
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, apperrors.NewServiceError("fetch directory", err)
	}

	users := make([]domain.User, len(wires))
	for i, w := range wires {
		users[i] = w.toDomain()
	}
	return users, nil
}

func (c *Client) queryEntries(ctx context.Context, query url.Values, operation string) ([]domain.TimeEntry, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/rest/v1/time_entries", query, nil, "")
	if err != nil {
		return nil, apperrors.NewServiceError(operation, err)
	}

	var wires []wireTimeEntry
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, apperrors.NewServiceError(operation, err)
	}

	entries := make([]domain.TimeEntry, len(wires))
	for i, w := range wires {
		entries[i] = w.toDomain()
	}
	return entries, nil
}

// singleEntry decodes a representation response, which the service always
// returns as an array.
func singleEntry(body []byte, operation string) (*domain.TimeEntry, error) {
	var wires []wireTimeEntry
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, apperrors.NewServiceError(operation, err)
	}
	if len(wires) == 0 {
		return nil, apperrors.NewServiceError(operation, fmt.Errorf("empty representation response"))
	}
	entry := wires[0].toDomain()
	return &entry, nil
}

// isAuthStatus reports whether the error is a 4xx auth-shaped response.
func isAuthStatus(err error) bool {
	se, ok := err.(*statusError)
	if !ok {
		return false
	}
	switch se.status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		return true
	default:
		return false
	}
}
