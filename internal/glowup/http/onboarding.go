package http

import (
	"net/http"

	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

// ProfileHandler serves the onboarding funnel, settings and paywall. Every
// successful call responds with the resulting state.
type ProfileHandler struct {
	ProfileService *service.ProfileService
	State          *state.Container
}

func (h *ProfileHandler) respond(w http.ResponseWriter, err error, r *http.Request) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toState(h.State.State()))
}

// HandleState handles GET /v1/state
//
//	@Summary		Get the app state
//	@Description	Current user profile, onboarding flag, challenges and tasks
//	@Tags			State
//	@Produce		json
//	@Success		200	{object}	glowupsdk.State
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/state [get]
func (h *ProfileHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, toState(h.State.State()))
}

// HandleName handles POST /v1/onboarding/name
//
//	@Summary		Set the user name
//	@Description	Creates the profile on the first onboarding step or renames an existing one
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			body	body	glowupsdk.SetNameRequest	true	"Name"
//	@Success		200	{object}	glowupsdk.State
//	@Failure		400	{object}	httpx.ErrorBody	"Bad Request"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/onboarding/name [post]
func (h *ProfileHandler) HandleName(w http.ResponseWriter, r *http.Request) {
	var req glowupsdk.SetNameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	_, err := h.ProfileService.SetName(r.Context(), req.Name)
	h.respond(w, err, r)
}

// HandleIcon handles POST /v1/onboarding/icon
//
//	@Summary		Select the profile icon
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			body	body	glowupsdk.SelectIconRequest	true	"Icon"
//	@Success		200	{object}	glowupsdk.State
//	@Failure		400	{object}	httpx.ErrorBody	"Bad Request"
//	@Failure		409	{object}	httpx.ErrorBody	"No user profile yet"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/onboarding/icon [post]
func (h *ProfileHandler) HandleIcon(w http.ResponseWriter, r *http.Request) {
	var req glowupsdk.SelectIconRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	_, err := h.ProfileService.SelectIcon(r.Context(), domain.Icon(req.Icon))
	h.respond(w, err, r)
}

// HandleGoals handles POST /v1/onboarding/goals
//
//	@Summary		Select goals
//	@Description	One to three known goals; repeated goals are collapsed
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			body	body	glowupsdk.SelectGoalsRequest	true	"Goals"
//	@Success		200	{object}	glowupsdk.State
//	@Failure		400	{object}	httpx.ErrorBody	"Bad Request"
//	@Failure		409	{object}	httpx.ErrorBody	"No user profile yet"
//	@Failure		422	{object}	httpx.ErrorBody	"More than three goals"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/onboarding/goals [post]
func (h *ProfileHandler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	var req glowupsdk.SelectGoalsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	_, err := h.ProfileService.SelectGoals(r.Context(), req.Goals)
	h.respond(w, err, r)
}

// HandleNotifications handles PUT /v1/notifications. All three toggles are
// replaced; omitted ones are read as off.
//
//	@Summary		Replace notification preferences
//	@Tags			Settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body	glowupsdk.NotificationPreferences	true	"All three toggles"
//	@Success		200	{object}	glowupsdk.State
//	@Failure		400	{object}	httpx.ErrorBody	"Bad Request"
//	@Failure		409	{object}	httpx.ErrorBody	"No user profile yet"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/notifications [put]
func (h *ProfileHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	var req glowupsdk.NotificationPreferences
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	_, err := h.ProfileService.SetNotificationPreferences(r.Context(), toPrefs(req))
	h.respond(w, err, r)
}

// HandleComplete handles POST /v1/onboarding/complete
//
//	@Summary		Complete onboarding
//	@Tags			Onboarding
//	@Produce		json
//	@Success		200	{object}	glowupsdk.State
//	@Failure		409	{object}	httpx.ErrorBody	"No user profile yet"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/onboarding/complete [post]
func (h *ProfileHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	_, err := h.ProfileService.CompleteOnboarding(r.Context())
	h.respond(w, err, r)
}

// HandleSubscribe handles POST /v1/subscription
//
//	@Summary		Upgrade to pro
//	@Description	Paywall purchase. No payment is taken; any known plan upgrades the profile
//	@Tags			Settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body	glowupsdk.SubscribeRequest	true	"Plan id (yearly or monthly)"
//	@Success		200	{object}	glowupsdk.State
//	@Failure		400	{object}	httpx.ErrorBody	"Bad Request"
//	@Failure		409	{object}	httpx.ErrorBody	"No user profile yet"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/subscription [post]
func (h *ProfileHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req glowupsdk.SubscribeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	_, err := h.ProfileService.Upgrade(r.Context(), req.Plan)
	h.respond(w, err, r)
}

// HandleLogout handles POST /v1/logout. The state is reset even when clearing
// storage fails, so this always answers with the reset state.
//
//	@Summary		Log out
//	@Description	Clears persisted data and resets the state
//	@Tags			Settings
//	@Produce		json
//	@Success		200	{object}	glowupsdk.State	"Reset state"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/logout [post]
func (h *ProfileHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.ProfileService.Logout(r.Context()); err != nil {
		slogx.FromContext(r.Context()).Warn("logout left persisted data behind", "error", err)
	}
	httpx.WriteJSON(w, http.StatusOK, toState(h.State.State()))
}
