package domain

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrEmptyName           = errors.New("domain: name must not be empty")
	ErrInvalidIcon         = errors.New("domain: unknown icon")
	ErrInvalidSubscription = errors.New("domain: unknown subscription tier")
	ErrTooManyGoals        = errors.New("domain: at most 3 goals may be selected")
	ErrDuplicateGoal       = errors.New("domain: goal selected twice")
	ErrUnknownGoal         = errors.New("domain: unknown goal")
)

// Icon is the avatar a user picks during onboarding.
type Icon string

const (
	IconSparkle  Icon = "sparkle"
	IconFlower   Icon = "flower"
	IconHeel     Icon = "heel"
	IconSerenity Icon = "serenity"
	IconDiamond  Icon = "diamond"
	IconBook     Icon = "book"
)

// Icons lists every icon in display order.
var Icons = []Icon{IconSparkle, IconFlower, IconHeel, IconSerenity, IconDiamond, IconBook}

func (i Icon) Valid() bool { return slices.Contains(Icons, i) }

type Subscription string

const (
	SubscriptionFree Subscription = "free"
	SubscriptionPro  Subscription = "pro"
)

func (s Subscription) Valid() bool {
	return s == SubscriptionFree || s == SubscriptionPro
}

type NotificationPreferences struct {
	DailyHabitReminders bool `json:"dailyHabitReminders"`
	WeeklyProgress      bool `json:"weeklyProgress"`
	MotivationalQuotes  bool `json:"motivationalQuotes"`
}

// DefaultNotificationPreferences has every reminder switched on, which is what
// a freshly named profile starts with.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		DailyHabitReminders: true,
		WeeklyProgress:      true,
		MotivationalQuotes:  true,
	}
}

// Enabled returns the names of the enabled reminder kinds.
func (p NotificationPreferences) Enabled() []string {
	var out []string
	if p.DailyHabitReminders {
		out = append(out, "dailyHabitReminders")
	}
	if p.WeeklyProgress {
		out = append(out, "weeklyProgress")
	}
	if p.MotivationalQuotes {
		out = append(out, "motivationalQuotes")
	}
	return out
}

// UserProfile is the on-device profile built up by the onboarding screens.
// The JSON field names are the persisted format and must not change.
type UserProfile struct {
	Name                    string                  `json:"name"`
	SelectedIcon            Icon                    `json:"selectedIcon"`
	SelectedGoals           []string                `json:"selectedGoals"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	Subscription            Subscription            `json:"subscription"`
}

// NewUserProfile builds the profile created by the first onboarding step.
func NewUserProfile(name string) (UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UserProfile{}, ErrEmptyName
	}

	return UserProfile{
		Name:                    name,
		SelectedIcon:            IconSparkle,
		SelectedGoals:           []string{},
		NotificationPreferences: DefaultNotificationPreferences(),
		Subscription:            SubscriptionFree,
	}, nil
}

// Validate reports the first broken profile invariant, or nil.
func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.SelectedIcon.Valid() {
		return ErrInvalidIcon
	}
	if !p.Subscription.Valid() {
		return ErrInvalidSubscription
	}
	return validateGoals(p.SelectedGoals)
}

// Clone returns a copy that shares no memory with p.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.SelectedGoals = slices.Clone(p.SelectedGoals)
	if out.SelectedGoals == nil {
		out.SelectedGoals = []string{}
	}
	return out
}

func (p UserProfile) Equal(o UserProfile) bool {
	return p.Name == o.Name &&
		p.SelectedIcon == o.SelectedIcon &&
		slices.Equal(p.SelectedGoals, o.SelectedGoals) &&
		p.NotificationPreferences == o.NotificationPreferences &&
		p.Subscription == o.Subscription
}

// ProfilesEqual compares two optional profiles.
func ProfilesEqual(a, b *UserProfile) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func validateGoals(goals []string) error {
	if len(goals) > MaxSelectedGoals {
		return ErrTooManyGoals
	}
	seen := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		if _, ok := seen[g]; ok {
			return ErrDuplicateGoal
		}
		seen[g] = struct{}{}
	}
	return nil
}
