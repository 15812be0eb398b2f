package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

// writeServiceError maps service and domain errors onto API errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrTooManyGoals):
		glowupsdk.ErrGoalLimit.Write(w)
	case errors.Is(err, service.ErrNoUser):
		glowupsdk.ErrNoUser.Write(w)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, catalog.ErrUnknownChallenge):
		glowupsdk.ErrNotFound.WithDescription(err.Error()).Write(w)
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidIcon),
		errors.Is(err, domain.ErrUnknownGoal),
		errors.Is(err, service.ErrGoalsRequired),
		errors.Is(err, service.ErrUnknownPlan),
		errors.Is(err, service.ErrEmptyTitle):
		glowupsdk.ErrInvalidRequest.WithDescription(err.Error()).Write(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		glowupsdk.ErrServer.Write(w)
	}
}

func writeBadBody(w http.ResponseWriter, err error) {
	glowupsdk.ErrInvalidRequest.WithDescription(err.Error()).Write(w)
}
