package http

import (
	"net/http"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/service"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/httpx"
)

// LogoutHandler serves POST /{id}/logout behind AuthnMiddleware. The bearer
// token's subject must match the path id; revoking an already-revoked token
// still succeeds.
type LogoutHandler struct {
	SessionService *service.SessionService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	token := httpx.TokenFromCtx(ctx)
	if userID == "" || token == "" {
		boxsdk.ErrUnauthorized.WriteError(w)
		return
	}

	if err := h.SessionService.Logout(ctx, userID, token); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, boxsdk.MessageResponse{Message: "logged out"})
}
