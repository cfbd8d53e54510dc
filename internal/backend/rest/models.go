package rest

import (
	"encoding/json"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
)

// wireUser is the JSON shape of a user as the hosted service returns it.
type wireUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (w wireUser) toDomain() domain.User {
	return domain.User{
		ID:    w.ID,
		Email: w.Email,
	}
}

// wireTimeEntry is the JSON shape of a time entry row. The clock-time
// columns keep the original camelCase names of the hosted table; absent
// optionals come back as null and marshal out as omitted.
type wireTimeEntry struct {
	ID         json.Number `json:"id,omitempty"`
	UserID     string      `json:"user_id"`
	Date       string      `json:"date"`
	StartTime  string      `json:"startTime,omitempty"`
	EndTime    string      `json:"endTime,omitempty"`
	BreakStart string      `json:"breakStart,omitempty"`
	BreakEnd   string      `json:"breakEnd,omitempty"`
	LunchStart string      `json:"lunchStart,omitempty"`
	LunchEnd   string      `json:"lunchEnd,omitempty"`
	Duration   string      `json:"duration,omitempty"`
}

func (w wireTimeEntry) toDomain() domain.TimeEntry {
	return domain.TimeEntry{
		ID:         w.ID.String(),
		UserID:     w.UserID,
		Date:       w.Date,
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
		BreakStart: w.BreakStart,
		BreakEnd:   w.BreakEnd,
		LunchStart: w.LunchStart,
		LunchEnd:   w.LunchEnd,
		Duration:   w.Duration,
	}
}

func fromDomain(entry domain.TimeEntry) wireTimeEntry {
	return wireTimeEntry{
		ID:         json.Number(entry.ID),
		UserID:     entry.UserID,
		Date:       entry.Date,
		StartTime:  entry.StartTime,
		EndTime:    entry.EndTime,
		BreakStart: entry.BreakStart,
		BreakEnd:   entry.BreakEnd,
		LunchStart: entry.LunchStart,
		LunchEnd:   entry.LunchEnd,
		Duration:   entry.Duration,
	}
}

// tokenResponse is the payload of a successful password login.
type tokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        wireUser `json:"user"`
}

// signupResponse is the payload of a registration call. Depending on the
// service's email-confirmation setting the user either comes back at the
// top level or nested.
type signupResponse struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	User  *wireUser `json:"user"`
}

func (s signupResponse) toDomain() domain.User {
	if s.User != nil {
		return s.User.toDomain()
	}
	return domain.User{ID: s.ID, Email: s.Email}
}

// errorResponse is the JSON error body of the hosted service.
type errorResponse struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (e errorResponse) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Msg != "":
		return e.Msg
	default:
		return e.ErrorDescription
	}
}
