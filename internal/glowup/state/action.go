package state

import "github.com/aussiebroadwan/glowup/internal/glowup/domain"

// Action is a closed set of state transitions. Only types in this package
// implement it; Reduce handles each one.
type Action interface {
	// Type is the stable action name used in logs.
	Type() string

	isAction()
}

type SetUser struct{ Profile domain.UserProfile }

type CompleteOnboarding struct{}

type AddChallenge struct{ Challenge domain.Challenge }

type CompleteChallenge struct{ ID string }

type AddTask struct{ Task domain.Task }

type CompleteTask struct{ ID string }

type UpdateNotificationPrefs struct{ Prefs domain.NotificationPreferences }

type UpdateSubscription struct{ Tier domain.Subscription }

// ResetState returns everything to InitialState. Used on logout.
type ResetState struct{}

func (SetUser) Type() string                 { return "SET_USER" }
func (CompleteOnboarding) Type() string      { return "COMPLETE_ONBOARDING" }
func (AddChallenge) Type() string            { return "ADD_CHALLENGE" }
func (CompleteChallenge) Type() string       { return "COMPLETE_CHALLENGE" }
func (AddTask) Type() string                 { return "ADD_TASK" }
func (CompleteTask) Type() string            { return "COMPLETE_TASK" }
func (UpdateNotificationPrefs) Type() string { return "UPDATE_NOTIFICATION_PREFS" }
func (UpdateSubscription) Type() string      { return "UPDATE_SUBSCRIPTION" }
func (ResetState) Type() string              { return "RESET_STATE" }

func (SetUser) isAction()                 {}
func (CompleteOnboarding) isAction()      {}
func (AddChallenge) isAction()            {}
func (CompleteChallenge) isAction()       {}
func (AddTask) isAction()                 {}
func (CompleteTask) isAction()            {}
func (UpdateNotificationPrefs) isAction() {}
func (UpdateSubscription) isAction()      {}
func (ResetState) isAction()              {}
