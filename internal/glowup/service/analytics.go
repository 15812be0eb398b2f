package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

// Event is one analytics record.
type Event struct {
	Name      string            `json:"name"`
	Params    map[string]string `json:"params,omitempty"`
	SessionID string            `json:"sessionId"`
	At        time.Time         `json:"at"`
}

// Analytics records product events. There is no vendor backend: events are
// written to the log and handed to Sink when one is set.
type Analytics struct {
	Logger *slog.Logger
	Sink   func(Event)

	sessionID string
}

func NewAnalytics(logger *slog.Logger) *Analytics {
	return &Analytics{
		Logger:    logger,
		sessionID: uuid.NewString(),
	}
}

// SessionID identifies this process run in every event.
func (a *Analytics) SessionID() string { return a.sessionID }

// Track records an event. It never fails; events without a name are dropped.
func (a *Analytics) Track(ctx context.Context, name string, params map[string]string) {
	if a == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		slogx.FromContext(ctx).Warn("analytics event without a name dropped")
		return
	}

	ev := Event{
		Name:      name,
		Params:    params,
		SessionID: a.sessionID,
		At:        time.Now().UTC(),
	}

	args := []any{"event", ev.Name, "session_id", ev.SessionID}
	for k, v := range params {
		args = append(args, "param."+k, v)
	}
	a.logger().Info("analytics", args...)

	if a.Sink != nil {
		a.Sink(ev)
	}
}

func (a *Analytics) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func (a *Analytics) TrackAppOpen(ctx context.Context) {
	a.Track(ctx, "app_open", nil)
}

func (a *Analytics) TrackPageView(ctx context.Context, page string) {
	a.Track(ctx, "page_view", map[string]string{"page": page})
}

func (a *Analytics) TrackButtonClick(ctx context.Context, buttonID, location string) {
	if location == "" {
		location = "unknown"
	}
	a.Track(ctx, "button_click", map[string]string{"button_id": buttonID, "location": location})
}

func (a *Analytics) TrackGoalSelected(ctx context.Context, goalID string) {
	a.TrackButtonClick(ctx, "select_goal_"+goalID, "goal_selection")
}

func (a *Analytics) TrackPaywallViewed(ctx context.Context) {
	a.Track(ctx, "paywall_viewed", nil)
}

func (a *Analytics) TrackSubscriptionStarted(ctx context.Context, plan Plan) {
	a.Track(ctx, "subscription_started", map[string]string{
		"plan":  plan.ID,
		"price": plan.Price,
	})
}

func (a *Analytics) TrackNotificationOptIn(ctx context.Context, types []string) {
	a.Track(ctx, "notification_opt_in", map[string]string{"types": strings.Join(types, ",")})
}
