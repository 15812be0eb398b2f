package domain

import "slices"

// MaxSelectedGoals caps how many onboarding goals a profile may carry.
const MaxSelectedGoals = 3

type Goal struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Goals is the onboarding goal list shown on the goals step.
var Goals = []Goal{
	{ID: "morning", Title: "Build a soft morning routine"},
	{ID: "reading", Title: "Read more and grow intellectually"},
	{ID: "selflove", Title: "Practice self-love daily"},
	{ID: "skincare", Title: "Create my ideal skincare routine"},
	{ID: "fitness", Title: "Reach my goal body"},
}

func LookupGoal(id string) (Goal, bool) {
	i := slices.IndexFunc(Goals, func(g Goal) bool { return g.ID == id })
	if i < 0 {
		return Goal{}, false
	}
	return Goals[i], true
}

// GoalSelection is the goals step working set. It refuses to grow past
// MaxSelectedGoals so a caller never dispatches an oversized profile.
type GoalSelection struct {
	goals []string
}

// NewGoalSelection starts from an existing selection. Unknown and repeated ids
// are dropped, and anything past the cap is ignored.
func NewGoalSelection(existing []string) *GoalSelection {
	s := &GoalSelection{goals: make([]string, 0, MaxSelectedGoals)}
	for _, id := range existing {
		_ = s.Select(id)
	}
	return s
}

// Select adds id unless it is already selected.
func (s *GoalSelection) Select(id string) error {
	if _, ok := LookupGoal(id); !ok {
		return ErrUnknownGoal
	}
	if s.Contains(id) {
		return nil
	}
	if len(s.goals) >= MaxSelectedGoals {
		return ErrTooManyGoals
	}
	s.goals = append(s.goals, id)
	return nil
}

// Toggle deselects id when selected, otherwise selects it.
func (s *GoalSelection) Toggle(id string) error {
	if i := slices.Index(s.goals, id); i >= 0 {
		s.goals = slices.Delete(s.goals, i, i+1)
		return nil
	}
	return s.Select(id)
}

func (s *GoalSelection) Contains(id string) bool { return slices.Contains(s.goals, id) }

func (s *GoalSelection) Len() int { return len(s.goals) }

// Ready reports whether the selection may be committed (1 to 3 goals).
func (s *GoalSelection) Ready() bool {
	return len(s.goals) > 0 && len(s.goals) <= MaxSelectedGoals
}

// Goals returns a copy of the selected ids in selection order.
func (s *GoalSelection) Goals() []string {
	out := make([]string, len(s.goals))
	copy(out, s.goals)
	return out
}
