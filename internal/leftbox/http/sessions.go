package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/service"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/httpx"
)

// SessionsHandler serves POST /sessions: a credential check that returns the
// matching user without minting a token and without counting as a login.
type SessionsHandler struct {
	SessionService *service.SessionService
	UserService    *service.UserService
}

func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boxsdk.CredentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		errInvalidBody.WriteError(w)
		return
	}

	user, err := h.SessionService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userToWire(user))
}
