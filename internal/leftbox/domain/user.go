package domain

import "time"

// User is an account record. PasswordHash holds a bcrypt digest and never
// crosses the HTTP boundary; AccessCount only ever moves up, once per
// successful login.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt encoded
	IsAdmin      bool
	AccessCount  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
