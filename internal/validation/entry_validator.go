package validation

import (
	"regexp"
	"strings"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
)

// EntryValidator provides validation for time entry field updates and
// login credentials. It only performs missing-field and format checks;
// overlapping or inverted intervals are deliberately not rejected.
type EntryValidator struct {
	clockTimeRegex *regexp.Regexp
	dateRegex      *regexp.Regexp
	emailRegex     *regexp.Regexp
}

// NewEntryValidator creates a new entry validator
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{
		clockTimeRegex: regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`),
		dateRegex:      regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		emailRegex:     regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
	}
}

// IsValidClockTime checks if a value is a well-formed HH:MM clock time
func (ev *EntryValidator) IsValidClockTime(value string) bool {
	return ev.clockTimeRegex.MatchString(value)
}

// IsValidDate checks if a value is a well-formed YYYY-MM-DD calendar date
func (ev *EntryValidator) IsValidDate(value string) bool {
	return ev.dateRegex.MatchString(value)
}

// ValidateFieldUpdate validates a single clock-time field update: the field
// must belong to the closed set of six time fields and the value must be a
// well-formed HH:MM clock time.
func (ev *EntryValidator) ValidateFieldUpdate(field domain.TimeField, value string) error {
	validationError := NewValidationError()

	if !field.IsValid() {
		validationError.AddInvalidValueError("field", string(field), "not an editable clock-time field")
	}

	if strings.TrimSpace(value) == "" {
		validationError.AddRequiredError(string(field))
	} else if !ev.IsValidClockTime(value) {
		validationError.AddInvalidFormatError(string(field), value, "HH:MM")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateCredentials validates login or registration input
func (ev *EntryValidator) ValidateCredentials(email, password string) error {
	validationError := NewValidationError()

	if strings.TrimSpace(email) == "" {
		validationError.AddRequiredError("email")
	} else if !ev.emailRegex.MatchString(email) {
		validationError.AddInvalidFormatError("email", email, "name@example.com")
	}

	if password == "" {
		validationError.AddRequiredError("password")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}
