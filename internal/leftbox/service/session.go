package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/store"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/validate"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/cryptox"
	"github.com/aussiebroadwan/leftbox/pkg/jwtx"
	"github.com/aussiebroadwan/leftbox/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// SessionService issues, verifies and revokes the bearer tokens that back
// authenticated sessions. Tokens are self-contained JWTs; the store keeps a
// fingerprint of each issued token so active sessions can be counted and
// reaped, not to gate verification.
type SessionService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string

	// TokenTTL bounds how long an issued session token stays valid.
	// Zero means jwtx.DefaultSessionTTL.
	TokenTTL time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultSessionTTL
}

// Login authenticates an email/password pair and issues a session token.
//
// An unknown email and a wrong password both return ErrInvalidCredentials;
// callers must not be able to tell the two apart. On success the user's
// access count is bumped and the token fingerprint is recorded, atomically.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	// Malformed input is rejected before the store is touched. Login only
	// requires the password to be present; length rules apply at register.
	if fields := loginFields(email, password); fields != nil {
		return domain.User{}, "", &ValidationError{Fields: fields}
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so the unknown-email path costs
			// about as much as the wrong-password path.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	claims := jwtx.NewSessionClaims(user.ID, s.Issuer, s.ttl(), now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.User{}, "", err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().IncrementAccessCount(ctx, user.ID); err != nil {
			return err
		}
		return tx.SessionTokens().CreateSessionToken(ctx, domain.SessionToken{
			TokenHash: cryptox.FingerprintToken(token),
			UserID:    user.ID,
			ExpiresAt: claims.ExpiresAt.Time,
		})
	})
	if err != nil {
		return domain.User{}, "", err
	}
	user.AccessCount++

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return user, token, nil
}

// loginFields validates a login payload: the email must parse and the
// password must be present.
func loginFields(email, password string) []boxsdk.FieldError {
	var fields []boxsdk.FieldError
	if fe := validate.Email(email); fe != nil {
		fields = append(fields, *fe)
	}
	if password == "" {
		fields = append(fields, boxsdk.FieldError{Field: "password", Message: "password is required"})
	}
	return fields
}

// Authenticate checks an email/password pair without issuing a token. Unlike
// Login it has no side effects: no access count bump, no session record.
func (s *SessionService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Logout revokes the session token presented by the bearer identified by
// userID. The token must verify and its subject must match userID, otherwise
// ErrUnauthorized. Revoking a token that was already revoked succeeds.
func (s *SessionService) Logout(ctx context.Context, userID, token string) error {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return ErrUnauthorized
	}
	if claims.Subject != userID {
		l.Info("logout subject mismatch", slog.String("path_user_id", userID))
		return ErrUnauthorized
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}

	if err := s.Store.SessionTokens().DeleteSessionToken(ctx, userID, cryptox.FingerprintToken(token)); err != nil {
		return err
	}

	l.Info("logout", slog.String("user_id", userID))
	return nil
}

// Verify checks a bearer token and returns its claims. It reads nothing and
// writes nothing; repeated calls are free of side effects.
func (s *SessionService) Verify(ctx context.Context, token string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, ErrUnauthorized
	}
	if err := claims.ValidateExpiry(); err != nil {
		return jwtx.Claims{}, ErrUnauthorized
	}
	return claims, nil
}
