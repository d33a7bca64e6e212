package domain

import "time"

// SessionToken is one entry in a user's active-token set. Only the SHA-256
// fingerprint of the JWT is stored; the raw token never touches the database.
type SessionToken struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
