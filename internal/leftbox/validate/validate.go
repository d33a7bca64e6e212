// Package validate holds the request validation rules shared by the service
// layer. Rules return field-level problems rather than errors so handlers can
// report every failing field in one response.
package validate

import (
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
)

const (
	MinPasswordLength = 8
	MaxEmailLength    = 254
	MaxBoxNameLength  = 120
)

// Credentials checks a register/login payload. A nil result means the payload
// is acceptable.
func Credentials(email, password string) []boxsdk.FieldError {
	var fields []boxsdk.FieldError
	if fe := Email(email); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := Password(password); fe != nil {
		fields = append(fields, *fe)
	}
	return fields
}

func Email(email string) *boxsdk.FieldError {
	if strings.TrimSpace(email) == "" {
		return &boxsdk.FieldError{Field: "email", Message: "email is required"}
	}
	if len(email) > MaxEmailLength {
		return &boxsdk.FieldError{Field: "email", Message: "email is too long"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &boxsdk.FieldError{Field: "email", Message: "email is not a valid address"}
	}
	return nil
}

func Password(password string) *boxsdk.FieldError {
	if password == "" {
		return &boxsdk.FieldError{Field: "password", Message: "password is required"}
	}
	if len(password) < MinPasswordLength {
		return &boxsdk.FieldError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// BoxName checks a box creation payload.
func BoxName(name string) *boxsdk.FieldError {
	if strings.TrimSpace(name) == "" {
		return &boxsdk.FieldError{Field: "name", Message: "name is required"}
	}
	if len(name) > MaxBoxNameLength {
		return &boxsdk.FieldError{Field: "name", Message: "name is too long"}
	}
	return nil
}
