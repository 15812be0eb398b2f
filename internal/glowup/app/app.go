package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	httpapi "github.com/aussiebroadwan/glowup/internal/glowup/http"
	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application wires the state container, its persistence and the HTTP API.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	catalog   *catalog.Catalog
	persister *service.Persister
	state     *state.Container

	analytics       *service.Analytics
	profileService  *service.ProfileService
	progressService *service.ProgressService

	server *http.Server
	router *httpapi.Router

	shutdownOnce sync.Once
	shutdownErr  error
}

// New opens the store, hydrates the state and builds the HTTP server. The
// persister is started by Run.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "glowup",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	app.catalog = cat

	if err := app.initStore(); err != nil {
		return nil, err
	}

	app.initState(ctx)
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP API without a listener.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until ctx is done or SIGINT/SIGTERM arrives, then shuts down.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.persister.Start()
	app.analytics.TrackAppOpen(ctx)

	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		_ = app.Shutdown()
		return fmt.Errorf("failed to listen: %w", err)
	}

	app.logger.Info("glowup service starting",
		"addr", ln.Addr().String(),
		"store", app.cfg.StoreDriver,
		"version", BuildVersion,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested")
		return app.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops the server, drains pending writes and closes the store.
// Later calls return the first result.
func (app *Application) Shutdown() error {
	app.shutdownOnce.Do(func() {
		app.logger.Info("shutting down glowup service...")

		ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
		defer cancel()

		if err := app.server.Shutdown(ctx); err != nil {
			app.logger.Error("graceful server shutdown failed", "error", err)
			if err := app.server.Close(); err != nil {
				app.logger.Error("error closing server", "error", err)
			}
		}

		// Drain before closing the store so the last snapshot lands.
		app.persister.Stop()

		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing store", "error", err)
			app.shutdownErr = err
			return
		}

		app.logger.Info("glowup service stopped")
	})
	return app.shutdownErr
}

func (app *Application) initStore() error {
	db, err := OpenStore(app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("store ready", "driver", app.cfg.StoreDriver)
	return nil
}

func (app *Application) initState(ctx context.Context) {
	app.persister = service.NewPersister(app.db, app.logger, app.cfg.PersistWriteTimeout)

	app.state = state.Open(ctx, state.Options{
		Store:          app.db,
		Mirror:         app.persister,
		Logger:         app.logger,
		HydrateTimeout: app.cfg.HydrateTimeout,
	})
}

func (app *Application) initServices() {
	app.analytics = service.NewAnalytics(app.logger)

	app.profileService = &service.ProfileService{
		State:     app.state,
		Analytics: app.analytics,
	}
	app.progressService = &service.ProgressService{
		State:     app.state,
		Catalog:   app.catalog,
		Analytics: app.analytics,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.state, app.logger)

	router.Catalog = app.catalog
	router.Persister = app.persister
	router.Analytics = app.analytics
	router.ProfileService = app.profileService
	router.ProgressService = app.progressService

	router.WriteLimit = httpx.LimitFromEnv("WRITE", httpx.WriteLimit)
	router.ReadLimit = httpx.LimitFromEnv("READ", httpx.ReadLimit)
	router.EventLimit = httpx.LimitFromEnv("EVENT", httpx.EventLimit)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              net.JoinHostPort(app.cfg.Host, strconv.Itoa(app.cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
