package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/store"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/validate"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/cryptox"
	"github.com/aussiebroadwan/leftbox/pkg/idx"
	"github.com/aussiebroadwan/leftbox/pkg/slogx"
)

var (
	ErrDuplicateEmail = errors.New("duplicate_email")
)

// ValidationError carries field-level problems up to the HTTP layer.
type ValidationError struct {
	Fields []boxsdk.FieldError
}

func (e *ValidationError) Error() string { return "validation_failed" }

type UserService struct {
	Store store.Store

	// BcryptCost is the work factor for new password hashes. Zero means
	// the library default.
	BcryptCost int
}

// Register creates a new account from an email/password pair. The password is
// hashed before anything touches the database, so a rejected registration
// never persists plaintext anywhere.
//
// Returns *ValidationError when the payload fails validation and
// ErrDuplicateEmail when the address is already registered.
func (s *UserService) Register(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if fields := validate.Credentials(email, password); fields != nil {
		return domain.User{}, &ValidationError{Fields: fields}
	}

	taken, err := s.Store.Users().EmailTaken(ctx, email, "")
	if err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, ErrDuplicateEmail
	}

	hash, err := cryptox.HashPassword(password, s.BcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// The UNIQUE constraint is the race-proof backstop behind EmailTaken:
		// two concurrent registrations can both pass the pre-check, but only
		// one insert wins.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, err
	}

	// Read back so callers see the store-assigned timestamps.
	created, err := s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", created.ID))
	return created, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// UpdatePassword replaces a user's password hash. The plaintext is hashed
// here, exactly once; an input that already looks like a bcrypt digest is
// rejected so a hash can never be re-hashed or smuggled in as one.
func (s *UserService) UpdatePassword(ctx context.Context, userID, password string) error {
	if fe := validate.Password(password); fe != nil {
		return &ValidationError{Fields: []boxsdk.FieldError{*fe}}
	}
	if cryptox.IsHashed(password) {
		return &ValidationError{Fields: []boxsdk.FieldError{
			{Field: "password", Message: "password is not acceptable"},
		}}
	}

	hash, err := cryptox.HashPassword(password, s.BcryptCost)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

// UpdateEmail changes a user's email address, enforcing uniqueness against
// every other account.
func (s *UserService) UpdateEmail(ctx context.Context, userID, email string) error {
	if fe := validate.Email(email); fe != nil {
		return &ValidationError{Fields: []boxsdk.FieldError{*fe}}
	}

	taken, err := s.Store.Users().EmailTaken(ctx, email, userID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}

	if err := s.Store.Users().UpdateEmail(ctx, userID, email); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}
