package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/service"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/httpx"
)

// RegisterHandler serves POST /register. A valid email/password pair creates
// an account; validation problems come back as a 422 with per-field messages
// and a duplicate address as a 409.
type RegisterHandler struct {
	UserService *service.UserService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boxsdk.CredentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		errInvalidBody.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userToWire(user))
}
