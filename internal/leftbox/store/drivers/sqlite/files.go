package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
)

type filesRepo struct {
	db dbtx
}

func (r *filesRepo) CreateFile(ctx context.Context, f domain.File) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO files (id, box_id, name, original_name, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.BoxID, f.Name, f.OriginalName, f.SizeBytes, f.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *filesRepo) ListBoxFiles(ctx context.Context, boxID string) ([]domain.File, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, box_id, name, original_name, size_bytes, created_at
		FROM files WHERE box_id = ?
		ORDER BY created_at DESC, id DESC`, boxID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(&f.ID, &f.BoxID, &f.Name, &f.OriginalName, &f.SizeBytes, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
