package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
)

// ReadyzHandler reports 503 when the store is unreachable or the persister is
// not running. A hydration fallback is reported but does not fail readiness: the
// service runs from an empty state in that case.
//
//	@Summary		Readiness
//	@Description	Checks the store, hydration and persister
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	glowupsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	glowupsdk.HealthResponse	"store unreachable or persister stopped"
//	@Router			/readyz [get]
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	c *state.Container,
	p *service.Persister,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &glowupsdk.HealthChecks{
			Store:     "ok",
			Hydration: "ok",
			Persister: "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Store = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if h := c.Hydration(); h.Fallback {
			checks.Hydration = "fallback: started from empty state"
		}

		if p == nil || !p.Running() {
			checks.Persister = "error: not running"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, glowupsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
