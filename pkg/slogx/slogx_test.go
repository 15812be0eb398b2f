package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	} {
		require.Equal(t, want, slogx.ParseLevel(in), in)
	}
}

func TestNewTagsEveryRecord(t *testing.T) {
	// New swaps the global default, put it back or the other tests get noisy
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{
		Service: "glowup",
		Version: "test",
		Env:     "prod",
		Level:   "warn",
		Output:  &buf,
	})

	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "kept", rec["msg"])
	require.Equal(t, "glowup", rec["service"])
	require.Equal(t, "prod", rec["env"])
	require.Equal(t, "v", rec["k"])
	require.NotContains(t, rec, "source")
}

func TestFromContextFallsBack(t *testing.T) {
	require.Same(t, slog.Default(), slogx.FromContext(context.Background()))

	l := slogx.Discard()
	require.Same(t, l, slogx.FromContext(slogx.WithContext(context.Background(), l)))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates a request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/state", nil))

		reqID := rec.Header().Get("X-Request-ID")
		require.True(t, strings.HasPrefix(reqID, "req_"), reqID)

		// one line from the handler, one from the middleware
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			var r map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &r))
			assert.Equal(t, reqID, r["req_id"])
		}

		var last map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &last))
		require.Equal(t, "http_request", last["msg"])
		require.EqualValues(t, http.StatusTeapot, last["status"])
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
		req.Header.Set("X-Request-ID", "from-the-app")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "from-the-app", rec.Header().Get("X-Request-ID"))
	})
}
