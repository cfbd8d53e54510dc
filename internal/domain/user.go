package domain

// User represents an authenticated identity in the domain model.
// This is a pure domain model without service-specific concerns.
type User struct {
	ID    string
	Email string
}

// IsValid checks if the user has valid data.
func (u User) IsValid() bool {
	return u.ID != "" && u.Email != ""
}

// String returns the user's email for display purposes.
func (u User) String() string {
	return u.Email
}
