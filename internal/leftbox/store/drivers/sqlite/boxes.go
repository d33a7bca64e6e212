package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
)

type boxesRepo struct {
	db dbtx
}

func (r *boxesRepo) CreateBox(ctx context.Context, b domain.Box) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO boxes (id, name, created_by, created_at)
		VALUES (?, ?, ?, ?)`,
		b.ID, b.Name, nullString(b.CreatedBy), b.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *boxesRepo) GetBoxByID(ctx context.Context, id string) (domain.Box, error) {
	var b domain.Box
	var createdBy sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_by, created_at FROM boxes WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &createdBy, &b.CreatedAt)
	if err != nil {
		return domain.Box{}, mapNotFound(err)
	}
	if createdBy.Valid {
		b.CreatedBy = createdBy.String
	}
	return b, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
