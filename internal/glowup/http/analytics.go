package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
)

// EventsHandler accepts analytics events from a UI. Tracking never fails the
// caller, so only undecodable bodies are rejected.
type EventsHandler struct {
	Analytics *service.Analytics
}

// ServeHTTP handles POST /v1/analytics/events
//
//	@Summary		Track an analytics event
//	@Tags			Analytics
//	@Accept			json
//	@Produce		json
//	@Param			body	body	glowupsdk.EventRequest	true	"Event"
//	@Success		202	"Accepted"
//	@Failure		400	{object}	httpx.ErrorBody	"Bad Request"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/analytics/events [post]
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req glowupsdk.EventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	if req.Name == "" {
		glowupsdk.ErrInvalidRequest.WithDescription("event name is required").Write(w)
		return
	}

	// Detached from the request so a client disconnect does not cancel it.
	h.Analytics.Track(context.WithoutCancel(r.Context()), req.Name, req.Params)
	w.WriteHeader(http.StatusAccepted)
}
