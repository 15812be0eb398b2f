package glowup_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/glowup/internal/glowup/app"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
)

/*
 * Helpers for the end-to-end tests. Each test gets its own Postgres
 * container and runs the service in-process against it through the gorm
 * driver, so a restart is just a second app.New on the same DSN.
 */

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "glowup"
	postgresPassword = "glowup"
	postgresDB       = "glowup"
)

// setupPostgres starts a Postgres container and returns its DSN.
func setupPostgres(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// Postgres restarts once after initdb; the second line is the real one.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, host, mappedPort.Port(), postgresDB)
}

func postgresConfig(dsn string) app.Config {
	return app.Config{
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		Host:                "127.0.0.1",
		StoreDriver:         app.DriverGorm,
		DatabaseURL:         dsn,
		HydrateTimeout:      5 * time.Second,
		PersistWriteTimeout: 5 * time.Second,
		ShutdownGracePeriod: 5 * time.Second,
	}
}

// startService runs the application until stop is called or the test ends.
func startService(t *testing.T, cfg app.Config) (client *glowupsdk.Client, stop func()) {
	t.Helper()

	application, err := app.New(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	srv := httptest.NewServer(application.Handler())

	stopped := false
	stop = func() {
		if stopped {
			return
		}
		stopped = true
		srv.Close()
		cancel()
		require.NoError(t, <-done)
	}
	t.Cleanup(stop)

	return glowupsdk.NewClient(srv.URL), stop
}

// assertReady verifies a readiness response reports every check as ok.
func assertReady(t *testing.T, health *glowupsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
