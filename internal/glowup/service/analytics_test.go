package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

func TestAnalytics(t *testing.T) {
	ctx := context.Background()

	var got []Event
	a := NewAnalytics(slogx.Discard())
	a.Sink = func(e Event) { got = append(got, e) }

	_, err := uuid.Parse(a.SessionID())
	require.NoError(t, err)

	a.TrackPageView(ctx, "/onboarding/goals")
	a.TrackGoalSelected(ctx, "reading")
	a.TrackButtonClick(ctx, "dismiss_paywall", "")
	a.Track(ctx, "  ", nil)

	require.Len(t, got, 3)
	require.Equal(t, "page_view", got[0].Name)
	require.Equal(t, "/onboarding/goals", got[0].Params["page"])
	require.Equal(t, "select_goal_reading", got[1].Params["button_id"])
	require.Equal(t, "unknown", got[2].Params["location"])

	for _, e := range got {
		require.Equal(t, a.SessionID(), e.SessionID)
		require.False(t, e.At.IsZero())
	}
}

func TestNilAnalyticsIsSafe(t *testing.T) {
	var a *Analytics
	require.NotPanics(t, func() { a.TrackAppOpen(context.Background()) })
}
