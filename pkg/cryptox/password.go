package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when no explicit cost is
// configured. Raising it makes hashing (and login) proportionally slower.
const DefaultCost = 10

// ErrPasswordMismatch is returned when a plaintext does not match a hash.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// DummyHash is a throwaway bcrypt digest (of an unguessable random input)
// used to equalise timing on lookups that miss: comparing against it costs
// the same as a real verification, so "no such account" and "wrong password"
// are indistinguishable from the outside.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password with bcrypt using a per-call
// random salt. The salt and cost are embedded in the returned string, so no
// extra bookkeeping is needed to verify later.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("cryptox: bcrypt cost %d out of range", cost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
// The comparison inside bcrypt is constant-time with respect to the digest.
// Returns ErrPasswordMismatch when the password is wrong; other errors mean
// the stored hash itself is malformed.
func VerifyPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("cryptox: verify password: %w", err)
}

// IsHashed reports whether s already looks like a bcrypt digest. Guard for
// the paths that set the password field: an already-hashed value must never
// be hashed again.
func IsHashed(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
