package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/httpx"
)

// LivezHandler always returns 200 while the process is up.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, boxsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
