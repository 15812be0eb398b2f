package glowupsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
)

func TestClientDecodesState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/onboarding/name", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req glowupsdk.SetNameRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(glowupsdk.State{
			User:       &glowupsdk.Profile{Name: req.Name, SelectedIcon: "sparkle", Subscription: "free"},
			Challenges: []glowupsdk.Challenge{},
			Tasks:      []glowupsdk.Task{},
		})
	}))
	defer srv.Close()

	c := glowupsdk.NewClient(srv.URL + "/")
	st, err := c.SetName(context.Background(), "Ava")
	require.NoError(t, err)
	require.Equal(t, "Ava", st.User.Name)
	require.False(t, st.OnboardingComplete)
}

func TestClientReturnsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/onboarding/goals":
			glowupsdk.ErrGoalLimit.Write(w)
		case "/v1/state":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := glowupsdk.NewClient(srv.URL)
	ctx := context.Background()

	_, err := c.SelectGoals(ctx, "morning", "reading", "selflove", "skincare")
	require.ErrorIs(t, err, glowupsdk.ErrGoalLimit)

	var apiErr *glowupsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)

	_, err = c.State(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, glowupsdk.ErrorCodeServerError, apiErr.Code)
}

func TestClientGateEncodesRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/(tabs)", r.URL.Query().Get("route"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(glowupsdk.GateResponse{
			Route:    "/(tabs)",
			Phase:    "unauthenticated",
			Redirect: "/welcome",
		})
	}))
	defer srv.Close()

	g, err := glowupsdk.NewClient(srv.URL).Gate(context.Background(), "/(tabs)")
	require.NoError(t, err)
	require.Equal(t, "/welcome", g.Redirect)
}

func TestTrackExpectsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	require.NoError(t, glowupsdk.NewClient(srv.URL).Track(context.Background(), "app_open", nil))
}
