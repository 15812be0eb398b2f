package glowupsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

func (c *Client) State(ctx context.Context) (*State, error) {
	return c.state(ctx, http.MethodGet, "/v1/state", nil, http.StatusOK)
}

// state performs a call whose response body is the resulting State.
func (c *Client) state(ctx context.Context, method, path string, body any, expected int) (*State, error) {
	var st State
	if err := c.do(ctx, method, path, body, &st, expected); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) SetName(ctx context.Context, name string) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/onboarding/name", SetNameRequest{Name: name}, http.StatusOK)
}

func (c *Client) SelectIcon(ctx context.Context, icon string) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/onboarding/icon", SelectIconRequest{Icon: icon}, http.StatusOK)
}

func (c *Client) SelectGoals(ctx context.Context, goals ...string) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/onboarding/goals", SelectGoalsRequest{Goals: goals}, http.StatusOK)
}

func (c *Client) SetNotifications(ctx context.Context, prefs NotificationPreferences) (*State, error) {
	return c.state(ctx, http.MethodPut, "/v1/notifications", prefs, http.StatusOK)
}

func (c *Client) CompleteOnboarding(ctx context.Context) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/onboarding/complete", nil, http.StatusOK)
}

// Subscribe runs the paywall purchase for plan ("monthly" or "yearly").
func (c *Client) Subscribe(ctx context.Context, plan string) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/subscription", SubscribeRequest{Plan: plan}, http.StatusOK)
}

func (c *Client) StartChallenge(ctx context.Context, catalogID string) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/challenges", StartChallengeRequest{CatalogID: catalogID}, http.StatusCreated)
}

func (c *Client) CompleteChallenge(ctx context.Context, id string) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/challenges/"+url.PathEscape(id)+"/complete", nil, http.StatusOK)
}

func (c *Client) AddTask(ctx context.Context, title string, due *time.Time) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/tasks", AddTaskRequest{Title: title, DueDate: due}, http.StatusCreated)
}

func (c *Client) CompleteTask(ctx context.Context, id string) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/tasks/"+url.PathEscape(id)+"/complete", nil, http.StatusOK)
}

// Logout clears the persisted profile and resets the state. The reset state is
// returned even when the service failed to clear storage.
func (c *Client) Logout(ctx context.Context) (*State, error) {
	return c.state(ctx, http.MethodPost, "/v1/logout", nil, http.StatusOK)
}

func (c *Client) Gate(ctx context.Context, route string) (*GateResponse, error) {
	var g GateResponse
	path := "/v1/navigation/gate?" + url.Values{"route": {route}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &g, http.StatusOK); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) Catalog(ctx context.Context) (*CatalogResponse, error) {
	var cat CatalogResponse
	if err := c.do(ctx, http.MethodGet, "/v1/catalog/challenges", nil, &cat, http.StatusOK); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Track sends an analytics event. The service accepts it without waiting.
func (c *Client) Track(ctx context.Context, name string, params map[string]string) error {
	return c.do(ctx, http.MethodPost, "/v1/analytics/events", EventRequest{Name: name, Params: params}, nil, http.StatusAccepted)
}

func (c *Client) Liveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

func (c *Client) Readiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	var h HealthResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &h, http.StatusOK); err != nil {
		return nil, err
	}
	return &h, nil
}
