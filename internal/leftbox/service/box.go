package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/realtime"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/store"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/validate"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/idx"
	"github.com/aussiebroadwan/leftbox/pkg/slogx"
)

var ErrBoxNotFound = errors.New("box_not_found")

// MaxUploadBytes caps a single file upload.
const MaxUploadBytes = 64 << 20 // 64 MiB

// BoxService manages boxes and the files dropped into them. File bytes live
// on disk under UploadDir; the store holds only metadata.
type BoxService struct {
	Store     store.Store
	Hub       *realtime.Hub
	UploadDir string
}

// Create makes a new empty box. createdBy may be empty; boxes do not require
// an authenticated owner.
func (s *BoxService) Create(ctx context.Context, name, createdBy string) (domain.Box, error) {
	l := slogx.FromContext(ctx)

	if fe := validate.BoxName(name); fe != nil {
		return domain.Box{}, &ValidationError{Fields: []boxsdk.FieldError{*fe}}
	}

	box := domain.Box{
		ID:        idx.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedBy: createdBy,
	}
	if err := s.Store.Boxes().CreateBox(ctx, box); err != nil {
		return domain.Box{}, err
	}

	created, err := s.Store.Boxes().GetBoxByID(ctx, box.ID)
	if err != nil {
		return domain.Box{}, err
	}

	l.Info("box created", slog.String("box_id", created.ID))
	return created, nil
}

// Get returns a box and its files, newest file first.
func (s *BoxService) Get(ctx context.Context, boxID string) (domain.Box, []domain.File, error) {
	box, err := s.Store.Boxes().GetBoxByID(ctx, boxID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Box{}, nil, ErrBoxNotFound
		}
		return domain.Box{}, nil, err
	}

	files, err := s.Store.Files().ListBoxFiles(ctx, boxID)
	if err != nil {
		return domain.Box{}, nil, err
	}
	return box, files, nil
}

// AttachFile streams an uploaded file to disk, records its metadata and
// notifies the box's websocket room. The stored name is prefixed with a
// fresh id so two uploads of "photo.jpg" never collide, and the original
// name is kept as metadata only, never trusted as a path.
func (s *BoxService) AttachFile(ctx context.Context, boxID, originalName string, r io.Reader) (domain.File, error) {
	l := slogx.FromContext(ctx)

	if _, err := s.Store.Boxes().GetBoxByID(ctx, boxID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.File{}, ErrBoxNotFound
		}
		return domain.File{}, err
	}

	fileID := idx.New().String()
	storedName := fileID + "-" + sanitizeFilename(originalName)

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return domain.File{}, fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.UploadDir, storedName))
	if err != nil {
		return domain.File{}, fmt.Errorf("create upload file: %w", err)
	}

	size, err := io.Copy(dst, io.LimitReader(r, MaxUploadBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && size > MaxUploadBytes {
		err = fmt.Errorf("upload exceeds %d bytes", int64(MaxUploadBytes))
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.UploadDir, storedName))
		return domain.File{}, err
	}

	file := domain.File{
		ID:           fileID,
		BoxID:        boxID,
		Name:         storedName,
		OriginalName: originalName,
		SizeBytes:    size,
	}
	if err := s.Store.Files().CreateFile(ctx, file); err != nil {
		_ = os.Remove(filepath.Join(s.UploadDir, storedName))
		return domain.File{}, err
	}

	stored, err := s.Store.Files().ListBoxFiles(ctx, boxID)
	if err == nil {
		for _, f := range stored {
			if f.ID == fileID {
				file = f
				break
			}
		}
	}

	if s.Hub != nil {
		s.Hub.Broadcast(boxID, realtime.Event{
			Type: "file_added",
			Box:  boxID,
			Data: boxsdk.File{
				ID:           file.ID,
				BoxID:        file.BoxID,
				Name:         file.Name,
				OriginalName: file.OriginalName,
				SizeBytes:    file.SizeBytes,
				CreatedAt:    file.CreatedAt,
			},
		})
	}

	l.Info("file attached",
		slog.String("box_id", boxID),
		slog.String("file_id", file.ID),
		slog.Int64("size_bytes", size),
	)
	return file, nil
}

// sanitizeFilename strips any path components and characters that could
// confuse the filesystem from a client-provided filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
