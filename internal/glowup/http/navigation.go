package http

import (
	"net/http"

	"github.com/aussiebroadwan/glowup/internal/glowup/navigation"
	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
)

// GateHandler answers where a UI may go for the current state.
type GateHandler struct {
	State     *state.Container
	Analytics *service.Analytics
}

// ServeHTTP handles GET /v1/navigation/gate?route=
//
// An empty route is the initial render and is never redirected.
//
//	@Summary		Check a route against the gate
//	@Description	Where the UI may go for the current state. An empty route is never redirected
//	@Tags			Navigation
//	@Produce		json
//	@Param			route	query	string	false	"Route to check, e.g. /paywall"
//	@Success		200	{object}	glowupsdk.GateResponse
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/navigation/gate [get]
func (h *GateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := h.State.State()
	d := navigation.Decide(r.URL.Query().Get("route"), s.IsAuthenticated(), s.OnboardingComplete)

	if shown := d.Shown(); shown != "" {
		h.Analytics.TrackPageView(r.Context(), string(shown))
	}
	httpx.WriteJSON(w, http.StatusOK, toGate(d))
}
