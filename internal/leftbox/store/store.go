package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	SessionTokens() SessionTokens
	Boxes() Boxes
	Files() Files

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., login's
	// counter bump plus token insert). The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID). The
	// schema's UNIQUE(email) constraint is the authoritative duplicate
	// check; violations surface as ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByEmail is used during login and registration pre-checks.
	// Lookup is case-sensitive, matching what clients were built against.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// ListUsers returns all users ordered by creation (oldest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// EmailTaken reports whether another record (excluding excludeID) holds
	// the email. Best-effort pre-check only; CreateUser/UpdateEmail remain
	// the race-proof backstop.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)

	// UpdateEmail changes the email and bumps updated_at. UNIQUE violations
	// surface as ErrAlreadyExists.
	UpdateEmail(ctx context.Context, userID, email string) error

	// UpdatePasswordHash sets the password_hash (bcrypt) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// IncrementAccessCount bumps access_count by exactly one, atomically in
	// the database so concurrent logins cannot lose updates.
	IncrementAccessCount(ctx context.Context, userID string) error
}

type SessionTokens interface {
	// CreateSessionToken records a freshly minted token's fingerprint in the
	// user's active set.
	CreateSessionToken(ctx context.Context, t domain.SessionToken) error

	// GetSessionToken returns the record for a fingerprint.
	GetSessionToken(ctx context.Context, tokenHash string) (domain.SessionToken, error)

	// DeleteSessionToken removes a fingerprint from the user's active set.
	// Deleting an absent row is a successful no-op (logout is idempotent).
	DeleteSessionToken(ctx context.Context, userID, tokenHash string) error

	// CountUserSessionTokens returns the size of the user's active set.
	CountUserSessionTokens(ctx context.Context, userID string) (int, error)

	// DeleteExpiredSessionTokens is housekeeping.
	DeleteExpiredSessionTokens(ctx context.Context) error
}

type Boxes interface {
	// CreateBox inserts a new box (id is ULID).
	CreateBox(ctx context.Context, b domain.Box) error

	// GetBoxByID returns a box by id.
	GetBoxByID(ctx context.Context, id string) (domain.Box, error)
}

type Files interface {
	// CreateFile records an upload attached to a box.
	CreateFile(ctx context.Context, f domain.File) error

	// ListBoxFiles returns a box's files, newest first.
	ListBoxFiles(ctx context.Context, boxID string) ([]domain.File, error)
}
