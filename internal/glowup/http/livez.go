package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
)

// LivezHandler always answers 200 while the process is serving.
//
//	@Summary		Liveness
//	@Description	Always 200 while the process is serving
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	glowupsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, glowupsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
