package glowupsdk

import "time"

// NotificationPreferences are the three notification toggles.
type NotificationPreferences struct {
	DailyHabitReminders bool `json:"dailyHabitReminders"`
	WeeklyProgress      bool `json:"weeklyProgress"`
	MotivationalQuotes  bool `json:"motivationalQuotes"`
}

type Profile struct {
	Name                    string                  `json:"name"`
	SelectedIcon            string                  `json:"selectedIcon"`
	SelectedGoals           []string                `json:"selectedGoals"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	Subscription            string                  `json:"subscription"`
}

type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

type Challenge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Category    string `json:"category"`
	Tasks       []Task `json:"tasks"`
	Completed   bool   `json:"completed"`
}

// State is the full application state. User is nil until onboarding names
// the user.
type State struct {
	User               *Profile    `json:"user"`
	OnboardingComplete bool        `json:"onboardingComplete"`
	Challenges         []Challenge `json:"challenges"`
	Tasks              []Task      `json:"tasks"`
}

// GateResponse is the navigation decision for a route. Redirect is empty when
// the route may be shown.
type GateResponse struct {
	Route    string `json:"route"`
	Phase    string `json:"phase"`
	Redirect string `json:"redirect,omitempty"`
	Next     string `json:"next,omitempty"`
}

type CatalogCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

type CatalogChallenge struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Duration    int      `json:"duration"`
	Tasks       []string `json:"tasks"`
}

type CatalogResponse struct {
	Categories []CatalogCategory  `json:"categories"`
	Challenges []CatalogChallenge `json:"challenges"`
}

// Request bodies.

type SetNameRequest struct {
	Name string `json:"name"`
}

type SelectIconRequest struct {
	Icon string `json:"icon"`
}

type SelectGoalsRequest struct {
	Goals []string `json:"goals"`
}

type SubscribeRequest struct {
	Plan string `json:"plan"`
}

type StartChallengeRequest struct {
	CatalogID string `json:"catalogId"`
}

type AddTaskRequest struct {
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

type EventRequest struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// HealthResponse is returned by /livez and /readyz; only readyz fills Checks.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Store     string `json:"store"`
	Hydration string `json:"hydration"`
	Persister string `json:"persister"`
}
