package domain

import (
	"errors"
	"slices"
	"time"
)

var ErrInvalidChallenge = errors.New("domain: invalid challenge")

type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

type Challenge struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration"` // days
	Category     string `json:"category"`
	Tasks        []Task `json:"tasks"`
	Completed    bool   `json:"completed"`
}

func (c Challenge) Validate() error {
	if c.ID == "" || c.Title == "" || c.DurationDays <= 0 {
		return ErrInvalidChallenge
	}
	return nil
}

// Clone copies the owned task list.
func (c Challenge) Clone() Challenge {
	out := c
	out.Tasks = slices.Clone(c.Tasks)
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	return out
}
