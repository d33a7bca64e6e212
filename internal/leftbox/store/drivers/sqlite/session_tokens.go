package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
)

type sessionTokensRepo struct {
	db dbtx
}

func (r *sessionTokensRepo) CreateSessionToken(ctx context.Context, t domain.SessionToken) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_tokens (token_hash, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)`,
		t.TokenHash, t.UserID, t.ExpiresAt, t.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *sessionTokensRepo) GetSessionToken(ctx context.Context, tokenHash string) (domain.SessionToken, error) {
	var t domain.SessionToken
	err := r.db.QueryRowContext(ctx, `
		SELECT token_hash, user_id, expires_at, created_at
		FROM session_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(&t.TokenHash, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.SessionToken{}, mapNotFound(err)
	}
	return t, nil
}

// DeleteSessionToken is deliberately not checking affected rows: removing a
// token that is not in the set is a successful no-op.
func (r *sessionTokensRepo) DeleteSessionToken(ctx context.Context, userID, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE user_id = ? AND token_hash = ?`,
		userID, tokenHash,
	)
	return err
}

func (r *sessionTokensRepo) CountUserSessionTokens(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_tokens WHERE user_id = ?`, userID,
	).Scan(&count)
	return count, err
}

func (r *sessionTokensRepo) DeleteExpiredSessionTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE expires_at < ?`, time.Now().UTC(),
	)
	return err
}
