package boxsdk

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/leftbox/pkg/httpx"
)

// Error codes used across the API.
const (
	ErrorCodeValidation         = "validation_failed"
	ErrorCodeDuplicateEmail     = "duplicate_email"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
)

// FieldError pins a validation message to the input field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the error envelope every failing endpoint returns. It
// implements the error interface so it serves both the server (writing
// responses) and the SDK client (representing decoded failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Message is a short human-readable description
	Message string `json:"message"`

	// Fields carries per-field validation messages for 422 responses
	Fields []FieldError `json:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// Predefined API errors. The invalid-credentials message is deliberately
// identical for "no such user" and "wrong password" so responses cannot be
// used to enumerate accounts.
var (
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "invalid email or password",
	}

	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "unauthorized",
	}

	ErrDuplicateEmail = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeDuplicateEmail,
		Message:    "email address is already in use",
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "resource not found",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// NewValidationError builds the 422 envelope for field-level failures.
func NewValidationError(fields []FieldError) *APIError {
	return &APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       ErrorCodeValidation,
		Message:    "validation failed",
		Fields:     fields,
	}
}
