package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/service"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/httpx"
)

// LoginHandler serves POST /login. A correct pair returns the user plus a
// signed session token. Unknown email and wrong password produce the exact
// same 401 so the endpoint cannot be used to probe for accounts.
type LoginHandler struct {
	SessionService *service.SessionService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req boxsdk.CredentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		errInvalidBody.WriteError(w)
		return
	}

	user, token, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, boxsdk.LoginResponse{
		User:  userToWire(user),
		Token: token,
	})
}
