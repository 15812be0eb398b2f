package http

import (
	"net/http"

	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
)

type ProgressHandler struct {
	ProgressService *service.ProgressService
	Catalog         *catalog.Catalog
	State           *state.Container
}

// HandleCatalog handles GET /v1/catalog/challenges
//
//	@Summary		List the challenge catalog
//	@Tags			Challenges
//	@Produce		json
//	@Success		200	{object}	glowupsdk.CatalogResponse
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/catalog/challenges [get]
func (h *ProgressHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, toCatalog(h.Catalog))
}

// HandleStartChallenge handles POST /v1/challenges
//
//	@Summary		Start a challenge
//	@Description	Instantiates a catalog challenge with fresh ids
//	@Tags			Challenges
//	@Accept			json
//	@Produce		json
//	@Param			body	body	glowupsdk.StartChallengeRequest	true	"Catalog id"
//	@Success		201	{object}	glowupsdk.State
//	@Failure		400	{object}	httpx.ErrorBody	"Bad Request"
//	@Failure		404	{object}	httpx.ErrorBody	"Not Found"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/challenges [post]
func (h *ProgressHandler) HandleStartChallenge(w http.ResponseWriter, r *http.Request) {
	var req glowupsdk.StartChallengeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	if _, err := h.ProgressService.StartChallenge(r.Context(), req.CatalogID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toState(h.State.State()))
}

// HandleCompleteChallenge handles POST /v1/challenges/{id}/complete
//
//	@Summary		Complete a challenge
//	@Tags			Challenges
//	@Produce		json
//	@Param			id	path	string	true	"Challenge id"
//	@Success		200	{object}	glowupsdk.State
//	@Failure		404	{object}	httpx.ErrorBody	"Not Found"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/challenges/{id}/complete [post]
func (h *ProgressHandler) HandleCompleteChallenge(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ProgressService.CompleteChallenge(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toState(h.State.State()))
}

// HandleAddTask handles POST /v1/tasks
//
//	@Summary		Add a task
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			body	body	glowupsdk.AddTaskRequest	true	"Task"
//	@Success		201	{object}	glowupsdk.State
//	@Failure		400	{object}	httpx.ErrorBody	"Bad Request"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/tasks [post]
func (h *ProgressHandler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	var req glowupsdk.AddTaskRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	if _, err := h.ProgressService.AddTask(r.Context(), req.Title, req.DueDate); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toState(h.State.State()))
}

// HandleCompleteTask handles POST /v1/tasks/{id}/complete
//
//	@Summary		Complete a task
//	@Description	Completing a done task is a no-op
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path	string	true	"Task id"
//	@Success		200	{object}	glowupsdk.State
//	@Failure		404	{object}	httpx.ErrorBody	"Not Found"
//	@Failure		429	{object}	httpx.ErrorBody	"Too Many Requests"
//	@Router			/v1/tasks/{id}/complete [post]
func (h *ProgressHandler) HandleCompleteTask(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ProgressService.CompleteTask(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toState(h.State.State()))
}
