package http

import (
	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
)

// userToWire converts a domain user into its public shape. The password hash
// never crosses this boundary.
func userToWire(u domain.User) boxsdk.User {
	return boxsdk.User{
		ID:          u.ID,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		AccessCount: u.AccessCount,
		CreatedAt:   u.CreatedAt,
	}
}

func usersToWire(users []domain.User) []boxsdk.User {
	out := make([]boxsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, userToWire(u))
	}
	return out
}

func boxToWire(b domain.Box) boxsdk.Box {
	return boxsdk.Box{
		ID:        b.ID,
		Name:      b.Name,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
	}
}

func fileToWire(f domain.File) boxsdk.File {
	return boxsdk.File{
		ID:           f.ID,
		BoxID:        f.BoxID,
		Name:         f.Name,
		OriginalName: f.OriginalName,
		SizeBytes:    f.SizeBytes,
		CreatedAt:    f.CreatedAt,
	}
}

func filesToWire(files []domain.File) []boxsdk.File {
	out := make([]boxsdk.File, 0, len(files))
	for _, f := range files {
		out = append(out, fileToWire(f))
	}
	return out
}
