package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	gluphttp "github.com/aussiebroadwan/glowup/internal/glowup/http"
	"github.com/aussiebroadwan/glowup/internal/glowup/service"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/internal/glowup/store/drivers/memory"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
	"github.com/aussiebroadwan/glowup/pkg/httpx"
	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

type testServer struct {
	*glowupsdk.Client

	store     *memory.Store
	persister *service.Persister

	mu     sync.Mutex
	events []service.Event
}

func (s *testServer) eventNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Name
	}
	return out
}

func newTestServer(t *testing.T, configure ...func(*gluphttp.Router)) *testServer {
	t.Helper()

	ts := &testServer{store: memory.NewStore()}
	logger := slogx.Discard()

	ts.persister = service.NewPersister(ts.store, logger, time.Second)
	ts.persister.Start()
	t.Cleanup(ts.persister.Stop)

	c := state.Open(context.Background(), state.Options{Store: ts.store, Mirror: ts.persister, Logger: logger})

	cat, err := catalog.Default()
	require.NoError(t, err)

	analytics := service.NewAnalytics(logger)
	analytics.Sink = func(e service.Event) {
		ts.mu.Lock()
		defer ts.mu.Unlock()
		ts.events = append(ts.events, e)
	}

	r := gluphttp.NewRouter("test", ts.store, c, logger)
	r.Catalog = cat
	r.Persister = ts.persister
	r.Analytics = analytics
	r.ProfileService = &service.ProfileService{State: c, Analytics: analytics}
	r.ProgressService = &service.ProgressService{State: c, Catalog: cat, Analytics: analytics}
	for _, fn := range configure {
		fn(r)
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ts.Client = glowupsdk.NewClient(srv.URL)
	return ts
}

func TestOnboardingThroughTheAPI(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	gate, err := ts.Gate(ctx, "/(tabs)")
	require.NoError(t, err)
	require.Equal(t, "unauthenticated", gate.Phase)
	require.Equal(t, "/welcome", gate.Redirect)

	st, err := ts.SetName(ctx, "Ava")
	require.NoError(t, err)
	require.Equal(t, "Ava", st.User.Name)
	require.Equal(t, []string{}, st.User.SelectedGoals)

	gate, err = ts.Gate(ctx, "(tabs)")
	require.NoError(t, err)
	require.Equal(t, "onboarding", gate.Phase)
	require.Equal(t, "/onboarding/name", gate.Redirect)
	require.Equal(t, "/onboarding/icon", gate.Next)

	_, err = ts.SelectIcon(ctx, "flower")
	require.NoError(t, err)

	_, err = ts.SelectGoals(ctx, "morning", "reading", "selflove", "skincare")
	require.ErrorIs(t, err, glowupsdk.ErrGoalLimit)

	// Picking the same goal twice is a repeat tap, not an error.
	st, err = ts.SelectGoals(ctx, "selflove", "selflove")
	require.NoError(t, err)
	require.Equal(t, []string{"selflove"}, st.User.SelectedGoals)

	st, err = ts.SelectGoals(ctx, "morning", "reading")
	require.NoError(t, err)
	require.Equal(t, []string{"morning", "reading"}, st.User.SelectedGoals)

	st, err = ts.SetNotifications(ctx, glowupsdk.NotificationPreferences{WeeklyProgress: true})
	require.NoError(t, err)
	require.False(t, st.User.NotificationPreferences.DailyHabitReminders)

	gate, err = ts.Gate(ctx, "/paywall")
	require.NoError(t, err)
	require.Empty(t, gate.Redirect)

	st, err = ts.CompleteOnboarding(ctx)
	require.NoError(t, err)
	require.True(t, st.OnboardingComplete)

	gate, err = ts.Gate(ctx, "/paywall")
	require.NoError(t, err)
	require.Equal(t, "active", gate.Phase)
	require.Equal(t, "/(tabs)", gate.Redirect)

	st, err = ts.Subscribe(ctx, "yearly")
	require.NoError(t, err)
	require.Equal(t, "pro", st.User.Subscription)

	require.NoError(t, ts.persister.Flush(ctx))
	require.Equal(t, 2, ts.store.Len())

	require.Contains(t, ts.eventNames(), "page_view")
	require.Contains(t, ts.eventNames(), "subscription_started")
}

func TestProgressThroughTheAPI(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	cat, err := ts.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, cat.Categories, 6)

	st, err := ts.StartChallenge(ctx, "soft-mornings")
	require.NoError(t, err)
	require.Len(t, st.Challenges, 1)
	chID := st.Challenges[0].ID

	st, err = ts.CompleteChallenge(ctx, chID)
	require.NoError(t, err)
	require.True(t, st.Challenges[0].Completed)

	due := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	st, err = ts.AddTask(ctx, "Drink water", &due)
	require.NoError(t, err)
	require.Len(t, st.Tasks, 1)
	require.True(t, due.Equal(*st.Tasks[0].DueDate))
	taskID := st.Tasks[0].ID

	for range 2 {
		st, err = ts.CompleteTask(ctx, taskID)
		require.NoError(t, err)
		require.True(t, st.Tasks[0].Completed)
	}

	_, err = ts.CompleteTask(ctx, "tk_missing")
	require.ErrorIs(t, err, glowupsdk.ErrNotFound)

	_, err = ts.StartChallenge(ctx, "nope")
	require.ErrorIs(t, err, glowupsdk.ErrNotFound)

	_, err = ts.AddTask(ctx, " ", nil)
	require.ErrorIs(t, err, glowupsdk.ErrInvalidRequest)
}

func TestLogoutThroughTheAPI(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	_, err := ts.SetName(ctx, "Ava")
	require.NoError(t, err)
	_, err = ts.CompleteOnboarding(ctx)
	require.NoError(t, err)
	_, err = ts.AddTask(ctx, "Read", nil)
	require.NoError(t, err)

	st, err := ts.Logout(ctx)
	require.NoError(t, err)
	require.Nil(t, st.User)
	require.False(t, st.OnboardingComplete)
	require.Empty(t, st.Tasks)

	require.NoError(t, ts.persister.Flush(ctx))
	require.Zero(t, ts.store.Len())

	gate, err := ts.Gate(ctx, "/onboarding/goals")
	require.NoError(t, err)
	require.Equal(t, "/welcome", gate.Redirect)
}

func TestRequestErrors(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	t.Run("steps need a user", func(t *testing.T) {
		_, err := ts.SelectIcon(ctx, "flower")
		require.ErrorIs(t, err, glowupsdk.ErrNoUser)

		_, err = ts.CompleteOnboarding(ctx)
		require.ErrorIs(t, err, glowupsdk.ErrNoUser)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := ts.SetName(ctx, "")
		require.ErrorIs(t, err, glowupsdk.ErrInvalidRequest)
	})

	for name, body := range map[string]string{
		"malformed json": `{"name":`,
		"unknown field":  `{"nickname":"Ava"}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(ts.BaseURL+"/v1/onboarding/name", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAnalyticsEvents(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	require.NoError(t, ts.Track(ctx, "rating_prompt_shown", map[string]string{"source": "onboarding"}))
	require.Contains(t, ts.eventNames(), "rating_prompt_shown")

	err := ts.Track(ctx, "", nil)
	require.ErrorIs(t, err, glowupsdk.ErrInvalidRequest)
}

func TestWriteRateLimit(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t, func(r *gluphttp.Router) {
		r.WriteLimit = httpx.Limit{Requests: 2, Window: time.Minute, Burst: 2}
	})

	_, err := ts.SetName(ctx, "Ava")
	require.NoError(t, err)
	_, err = ts.AddTask(ctx, "Read", nil)
	require.NoError(t, err)

	// Shared across write endpoints.
	_, err = ts.SelectIcon(ctx, "book")
	require.ErrorIs(t, err, glowupsdk.ErrRateLimited)

	// Reads have their own budget.
	_, err = ts.State(ctx)
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	live, err := ts.Liveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := ts.Readiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Store)
	require.Equal(t, "ok", ready.Checks.Hydration)

	ts.persister.Stop()

	_, err = ts.Readiness(ctx)
	require.Error(t, err)
	resp, err := http.Get(ts.BaseURL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSwaggerDocs(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.BaseURL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Equal(t, "GlowUp App State API", doc.Info.Title)

	// Every route the router serves is documented.
	for path, method := range map[string]string{
		"/v1/state":                    "get",
		"/v1/onboarding/goals":         "post",
		"/v1/notifications":            "put",
		"/v1/challenges/{id}/complete": "post",
		"/v1/navigation/gate":          "get",
		"/v1/analytics/events":         "post",
		"/readyz":                      "get",
	} {
		require.Contains(t, doc.Paths[path], method, path)
	}
}
