package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/service"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/slogx"
)

// writeServiceError translates service-layer failures into the API error
// envelope. Anything unrecognised is a 500 and gets logged; the client never
// sees internal detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		boxsdk.NewValidationError(verr.Fields).WriteError(w)
	case errors.Is(err, service.ErrDuplicateEmail):
		boxsdk.ErrDuplicateEmail.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		boxsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		boxsdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrBoxNotFound):
		boxsdk.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		boxsdk.ErrServerError.WriteError(w)
	}
}

// malformed JSON and oversized bodies share one envelope
var errInvalidBody = &boxsdk.APIError{
	StatusCode: http.StatusUnprocessableEntity,
	Code:       boxsdk.ErrorCodeValidation,
	Message:    "request body could not be parsed",
}
