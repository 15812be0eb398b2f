package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/glowup/api/glowup" // Swagger docs
	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	State           *state.Container
	Catalog         *catalog.Catalog
	Persister       *service.Persister
	Analytics       *service.Analytics
	ProfileService  *service.ProfileService
	ProgressService *service.ProgressService

	// Limits default to the httpx profiles.
	WriteLimit httpx.Limit
	ReadLimit  httpx.Limit
	EventLimit httpx.Limit
}

func NewRouter(buildVersion string, st store.Store, c *state.Container, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		State:        c,
		WriteLimit:   httpx.WriteLimit,
		ReadLimit:    httpx.ReadLimit,
		EventLimit:   httpx.EventLimit,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	// One bucket for every state change so a client cannot spread a burst
	// across endpoints.
	write := httpx.RateLimitByIP(r.WriteLimit)

	r.registerProfile(write)
	r.registerProgress(write)
	r.registerNavigation()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
//
//	@title			GlowUp App State API
//	@version		0.1.0
//	@description	Loopback API over the GlowUp application state: onboarding funnel, challenges and tasks, navigation gate and analytics.
//	@description
//	@description	Every successful state change answers with the resulting state.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/glowup
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) read(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.RateLimitByIP(r.ReadLimit))
}

func (r *Router) registerProfile(write httpx.Middleware) {
	h := &ProfileHandler{ProfileService: r.ProfileService, State: r.State}

	r.Mux.Handle("GET /v1/state", r.read(h.HandleState))
	r.Mux.Handle("POST /v1/onboarding/name", httpx.Chain(http.HandlerFunc(h.HandleName), write))
	r.Mux.Handle("POST /v1/onboarding/icon", httpx.Chain(http.HandlerFunc(h.HandleIcon), write))
	r.Mux.Handle("POST /v1/onboarding/goals", httpx.Chain(http.HandlerFunc(h.HandleGoals), write))
	r.Mux.Handle("POST /v1/onboarding/complete", httpx.Chain(http.HandlerFunc(h.HandleComplete), write))
	r.Mux.Handle("PUT /v1/notifications", httpx.Chain(http.HandlerFunc(h.HandleNotifications), write))
	r.Mux.Handle("POST /v1/subscription", httpx.Chain(http.HandlerFunc(h.HandleSubscribe), write))
	r.Mux.Handle("POST /v1/logout", httpx.Chain(http.HandlerFunc(h.HandleLogout), write))
}

func (r *Router) registerProgress(write httpx.Middleware) {
	h := &ProgressHandler{ProgressService: r.ProgressService, Catalog: r.Catalog, State: r.State}

	r.Mux.Handle("GET /v1/catalog/challenges", r.read(h.HandleCatalog))
	r.Mux.Handle("POST /v1/challenges", httpx.Chain(http.HandlerFunc(h.HandleStartChallenge), write))
	r.Mux.Handle("POST /v1/challenges/{id}/complete", httpx.Chain(http.HandlerFunc(h.HandleCompleteChallenge), write))
	r.Mux.Handle("POST /v1/tasks", httpx.Chain(http.HandlerFunc(h.HandleAddTask), write))
	r.Mux.Handle("POST /v1/tasks/{id}/complete", httpx.Chain(http.HandlerFunc(h.HandleCompleteTask), write))
}

func (r *Router) registerNavigation() {
	gate := &GateHandler{State: r.State, Analytics: r.Analytics}
	r.Mux.Handle("GET /v1/navigation/gate", r.read(gate.ServeHTTP))

	events := &EventsHandler{Analytics: r.Analytics}
	r.Mux.Handle("POST /v1/analytics/events",
		httpx.Chain(events, httpx.RateLimitByIP(r.EventLimit)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", r.read(LivezHandler(r.startTime, r.buildVersion)))
	r.Mux.Handle("GET /readyz", r.read(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.State, r.Persister)))
}
