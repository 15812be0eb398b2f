package state

import (
	"slices"

	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
)

// Reduce applies a to s and returns the next state. It never fails: payloads
// that would break an invariant leave the state unchanged. The input state is
// never modified, so a state handed out earlier stays valid.
func Reduce(s domain.AppState, a Action) domain.AppState {
	switch a := a.(type) {
	case SetUser:
		if a.Profile.Validate() != nil {
			return s
		}
		p := a.Profile.Clone()
		s.User = &p
		return s

	case CompleteOnboarding:
		s.OnboardingComplete = true
		return s

	case AddChallenge:
		if a.Challenge.Validate() != nil {
			return s
		}
		if _, exists := s.Challenge(a.Challenge.ID); exists {
			return s
		}
		s.Challenges = append(slices.Clip(s.Challenges), a.Challenge.Clone())
		return s

	case CompleteChallenge:
		i := slices.IndexFunc(s.Challenges, func(c domain.Challenge) bool { return c.ID == a.ID })
		if i < 0 || s.Challenges[i].Completed {
			return s
		}
		s.Challenges = slices.Clone(s.Challenges)
		s.Challenges[i].Completed = true
		return s

	case AddTask:
		if a.Task.ID == "" {
			return s
		}
		if _, exists := s.Task(a.Task.ID); exists {
			return s
		}
		s.Tasks = append(slices.Clip(s.Tasks), a.Task)
		return s

	case CompleteTask:
		// One-way: there is no action that marks a task incomplete again.
		i := slices.IndexFunc(s.Tasks, func(t domain.Task) bool { return t.ID == a.ID })
		if i < 0 || s.Tasks[i].Completed {
			return s
		}
		s.Tasks = slices.Clone(s.Tasks)
		s.Tasks[i].Completed = true
		return s

	case UpdateNotificationPrefs:
		if s.User == nil {
			return s
		}
		p := s.User.Clone()
		p.NotificationPreferences = a.Prefs
		s.User = &p
		return s

	case UpdateSubscription:
		if s.User == nil || !a.Tier.Valid() {
			return s
		}
		p := s.User.Clone()
		p.Subscription = a.Tier
		s.User = &p
		return s

	case ResetState:
		return domain.InitialState()

	default:
		// Ignored: unknown actions leave the state as it was.
		return s
	}
}
