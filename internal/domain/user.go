package domain

// User represents an authenticated user account in the system.
// Username and email are unique; email uniqueness is case-insensitive.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"` // Stored lowercase
	PasswordHash string `json:"passwordHash,omitempty"`
	Timestamps
}

// Sanitized returns a copy of the user safe to include in API responses.
func (u *User) Sanitized() *User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}
