package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
)

// Plan is a paywall offer. Purchasing is stubbed: any known plan upgrades the
// profile to pro.
type Plan struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

var Plans = []Plan{
	{ID: "yearly", Title: "Yearly Plan", Price: "44.99"},
	{ID: "monthly", Title: "Monthly Plan", Price: "6.99"},
}

func LookupPlan(id string) (Plan, bool) {
	i := slices.IndexFunc(Plans, func(p Plan) bool { return p.ID == id })
	if i < 0 {
		return Plan{}, false
	}
	return Plans[i], true
}

// ProfileService drives the onboarding funnel and account screens. Input is
// validated here; the reducer would silently ignore it otherwise. Every change
// is built from the state it applies to, so concurrent edits never revert each
// other.
type ProfileService struct {
	State     *state.Container
	Analytics *Analytics
}

// update applies edit to the current profile as one dispatch.
func (s *ProfileService) update(edit func(p *domain.UserProfile)) (domain.UserProfile, error) {
	next, err := s.State.DispatchIf(func(cur domain.AppState) (state.Action, error) {
		if cur.User == nil {
			return nil, ErrNoUser
		}
		p := cur.User.Clone()
		edit(&p)
		return state.SetUser{Profile: p}, nil
	})
	if err != nil {
		return domain.UserProfile{}, err
	}
	return next.User.Clone(), nil
}

// requireUser dispatches a only while a profile exists.
func (s *ProfileService) requireUser(a state.Action) (domain.AppState, error) {
	return s.State.DispatchIf(func(cur domain.AppState) (state.Action, error) {
		if cur.User == nil {
			return nil, ErrNoUser
		}
		return a, nil
	})
}

// SetName creates the profile on the name step, or renames an existing one.
func (s *ProfileService) SetName(ctx context.Context, name string) (domain.UserProfile, error) {
	fresh, err := domain.NewUserProfile(name)
	if err != nil {
		return domain.UserProfile{}, err
	}

	next, _ := s.State.DispatchIf(func(cur domain.AppState) (state.Action, error) {
		if cur.User == nil {
			return state.SetUser{Profile: fresh}, nil
		}
		p := cur.User.Clone()
		p.Name = fresh.Name
		return state.SetUser{Profile: p}, nil
	})

	s.Analytics.TrackButtonClick(ctx, "continue_name", "onboarding_name")
	return next.User.Clone(), nil
}

func (s *ProfileService) SelectIcon(ctx context.Context, icon domain.Icon) (domain.UserProfile, error) {
	if !icon.Valid() {
		return domain.UserProfile{}, domain.ErrInvalidIcon
	}

	p, err := s.update(func(p *domain.UserProfile) { p.SelectedIcon = icon })
	if err != nil {
		return domain.UserProfile{}, err
	}
	s.Analytics.TrackButtonClick(ctx, "select_icon_"+string(icon), "onboarding_icon")
	return p, nil
}

// SelectGoals commits the goals step. Between one and MaxSelectedGoals known
// goals are accepted; repeats are collapsed.
func (s *ProfileService) SelectGoals(ctx context.Context, goals []string) (domain.UserProfile, error) {
	sel := domain.NewGoalSelection(nil)
	for _, id := range goals {
		if err := sel.Select(id); err != nil {
			return domain.UserProfile{}, fmt.Errorf("select goal %q: %w", id, err)
		}
	}
	if !sel.Ready() {
		return domain.UserProfile{}, ErrGoalsRequired
	}

	p, err := s.update(func(p *domain.UserProfile) { p.SelectedGoals = sel.Goals() })
	if err != nil {
		return domain.UserProfile{}, err
	}

	for _, id := range p.SelectedGoals {
		s.Analytics.TrackGoalSelected(ctx, id)
	}
	return p, nil
}

// SetNotificationPreferences replaces all three toggles.
func (s *ProfileService) SetNotificationPreferences(ctx context.Context, prefs domain.NotificationPreferences) (domain.UserProfile, error) {
	next, err := s.requireUser(state.UpdateNotificationPrefs{Prefs: prefs})
	if err != nil {
		return domain.UserProfile{}, err
	}

	if enabled := prefs.Enabled(); len(enabled) > 0 {
		s.Analytics.TrackNotificationOptIn(ctx, enabled)
	}
	return next.User.Clone(), nil
}

// CompleteOnboarding finishes the funnel. It requires a profile so the gate
// never sees a completed onboarding without a user.
func (s *ProfileService) CompleteOnboarding(ctx context.Context) (domain.AppState, error) {
	next, err := s.requireUser(state.CompleteOnboarding{})
	if err != nil {
		return domain.AppState{}, err
	}

	s.Analytics.TrackButtonClick(ctx, "complete_onboarding", "onboarding_rating")
	return next, nil
}

// Upgrade is the paywall purchase. No payment is taken.
func (s *ProfileService) Upgrade(ctx context.Context, planID string) (domain.UserProfile, error) {
	plan, ok := LookupPlan(planID)
	if !ok {
		return domain.UserProfile{}, ErrUnknownPlan
	}

	if !s.State.State().IsAuthenticated() {
		return domain.UserProfile{}, ErrNoUser
	}

	// The user can still log out while the paywall is up.
	s.Analytics.TrackPaywallViewed(ctx)
	next, err := s.requireUser(state.UpdateSubscription{Tier: domain.SubscriptionPro})
	if err != nil {
		return domain.UserProfile{}, err
	}

	s.Analytics.TrackSubscriptionStarted(ctx, plan)
	return next.User.Clone(), nil
}

// Logout clears persisted data and resets the state. The state is reset even
// when clearing storage fails; that error is returned for reporting.
func (s *ProfileService) Logout(ctx context.Context) error {
	s.Analytics.TrackButtonClick(ctx, "logout", "settings")
	return s.State.Logout(ctx)
}
