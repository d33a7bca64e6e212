package domain

import "time"

// Box is a shareable container that groups uploaded files. CreatedBy is
// empty when the box was created anonymously.
type Box struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}

// File is an upload attached to a box. Name is the stored name on disk,
// OriginalName what the client called it.
type File struct {
	ID           string
	BoxID        string
	Name         string
	OriginalName string
	SizeBytes    int64
	CreatedAt    time.Time
}
