package boxsdk

import "time"

// User is the wire representation of an account. The password hash is never
// part of this shape, so it cannot leak through any endpoint that returns it.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	IsAdmin     bool      `json:"is_admin"`
	AccessCount int64     `json:"access_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Box is a shareable container that groups uploaded files.
type Box struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// File describes an upload attached to a box.
type File struct {
	ID           string    `json:"id"`
	BoxID        string    `json:"box_id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

// CredentialsRequest is the body for register, login, and session checks.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user and a signed session token.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// CreateBoxRequest is the body for creating a box.
type CreateBoxRequest struct {
	Name string `json:"name"`
}

// BoxResponse is a box together with its files, newest first.
type BoxResponse struct {
	Box   Box    `json:"box"`
	Files []File `json:"files"`
}

// MessageResponse is a plain success acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service status for the probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks breaks down readiness by dependency.
type HealthChecks struct {
	Database string `json:"database"`
}
