package http

import (
	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"github.com/aussiebroadwan/glowup/internal/glowup/navigation"
	"github.com/aussiebroadwan/glowup/pkg/glowupsdk"
)

func toState(s domain.AppState) glowupsdk.State {
	out := glowupsdk.State{
		OnboardingComplete: s.OnboardingComplete,
		Challenges:         make([]glowupsdk.Challenge, 0, len(s.Challenges)),
		Tasks:              toTasks(s.Tasks),
	}
	if s.User != nil {
		p := toProfile(*s.User)
		out.User = &p
	}
	for _, c := range s.Challenges {
		out.Challenges = append(out.Challenges, toChallenge(c))
	}
	return out
}

func toProfile(p domain.UserProfile) glowupsdk.Profile {
	goals := p.SelectedGoals
	if goals == nil {
		goals = []string{}
	}
	return glowupsdk.Profile{
		Name:          p.Name,
		SelectedIcon:  string(p.SelectedIcon),
		SelectedGoals: goals,
		NotificationPreferences: glowupsdk.NotificationPreferences{
			DailyHabitReminders: p.NotificationPreferences.DailyHabitReminders,
			WeeklyProgress:      p.NotificationPreferences.WeeklyProgress,
			MotivationalQuotes:  p.NotificationPreferences.MotivationalQuotes,
		},
		Subscription: string(p.Subscription),
	}
}

func toChallenge(c domain.Challenge) glowupsdk.Challenge {
	return glowupsdk.Challenge{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Duration:    c.DurationDays,
		Category:    c.Category,
		Tasks:       toTasks(c.Tasks),
		Completed:   c.Completed,
	}
}

func toTasks(ts []domain.Task) []glowupsdk.Task {
	out := make([]glowupsdk.Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, glowupsdk.Task{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			DueDate:   t.DueDate,
		})
	}
	return out
}

func toPrefs(p glowupsdk.NotificationPreferences) domain.NotificationPreferences {
	return domain.NotificationPreferences{
		DailyHabitReminders: p.DailyHabitReminders,
		WeeklyProgress:      p.WeeklyProgress,
		MotivationalQuotes:  p.MotivationalQuotes,
	}
}

func toCatalog(c *catalog.Catalog) glowupsdk.CatalogResponse {
	out := glowupsdk.CatalogResponse{
		Categories: make([]glowupsdk.CatalogCategory, 0, len(c.Categories)),
		Challenges: make([]glowupsdk.CatalogChallenge, 0, len(c.Challenges)),
	}
	for _, cat := range c.Categories {
		out.Categories = append(out.Categories, glowupsdk.CatalogCategory{ID: cat.ID, Title: cat.Title, Icon: cat.Icon})
	}
	for _, t := range c.Challenges {
		out.Challenges = append(out.Challenges, glowupsdk.CatalogChallenge{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Category:    t.Category,
			Duration:    t.DurationDays,
			Tasks:       append([]string{}, t.Tasks...),
		})
	}
	return out
}

func toGate(d navigation.Decision) glowupsdk.GateResponse {
	return glowupsdk.GateResponse{
		Route:    string(d.Route),
		Phase:    string(d.Phase),
		Redirect: string(d.Redirect),
		Next:     string(d.Next),
	}
}
