package domain

import "slices"

// AppState is the whole in-memory application state. A nil User means nobody
// has started onboarding on this device.
type AppState struct {
	User               *UserProfile `json:"user"`
	OnboardingComplete bool         `json:"onboardingComplete"`
	Challenges         []Challenge  `json:"challenges"`
	Tasks              []Task       `json:"tasks"`
}

func InitialState() AppState {
	return AppState{
		User:               nil,
		OnboardingComplete: false,
		Challenges:         []Challenge{},
		Tasks:              []Task{},
	}
}

func (s AppState) IsAuthenticated() bool { return s.User != nil }

func (s AppState) Challenge(id string) (Challenge, bool) {
	i := slices.IndexFunc(s.Challenges, func(c Challenge) bool { return c.ID == id })
	if i < 0 {
		return Challenge{}, false
	}
	return s.Challenges[i], true
}

func (s AppState) Task(id string) (Task, bool) {
	i := slices.IndexFunc(s.Tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return Task{}, false
	}
	return s.Tasks[i], true
}
