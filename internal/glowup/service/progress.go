package service

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/pkg/idx"
)

// ProgressService starts challenges from the catalog and tracks tasks.
type ProgressService struct {
	State     *state.Container
	Catalog   *catalog.Catalog
	Analytics *Analytics
}

// StartChallenge instantiates a catalog template with fresh ids.
func (s *ProgressService) StartChallenge(ctx context.Context, catalogID string) (domain.Challenge, error) {
	tpl, err := s.Catalog.Lookup(catalogID)
	if err != nil {
		return domain.Challenge{}, err
	}

	ch := tpl.Instantiate(idx.New(idx.KindChallenge).String(), func() string {
		return idx.New(idx.KindTask).String()
	})

	s.State.Dispatch(state.AddChallenge{Challenge: ch})
	s.Analytics.TrackButtonClick(ctx, "start_challenge_"+tpl.ID, "explore")
	return ch, nil
}

func (s *ProgressService) CompleteChallenge(ctx context.Context, id string) (domain.Challenge, error) {
	next, err := s.State.DispatchIf(func(cur domain.AppState) (state.Action, error) {
		if _, ok := cur.Challenge(id); !ok {
			return nil, ErrNotFound
		}
		return state.CompleteChallenge{ID: id}, nil
	})
	if err != nil {
		return domain.Challenge{}, err
	}

	ch, _ := next.Challenge(id)
	s.Analytics.TrackButtonClick(ctx, "complete_challenge", "challenges")
	return ch, nil
}

// AddTask adds a standalone task. due may be nil.
func (s *ProgressService) AddTask(ctx context.Context, title string, due *time.Time) (domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Task{}, ErrEmptyTitle
	}

	t := domain.Task{
		ID:    idx.New(idx.KindTask).String(),
		Title: title,
	}
	if due != nil {
		d := due.UTC()
		t.DueDate = &d
	}

	s.State.Dispatch(state.AddTask{Task: t})
	s.Analytics.TrackButtonClick(ctx, "add_task", "progress")
	return t, nil
}

// CompleteTask marks a task done. Completing a done task is a no-op.
func (s *ProgressService) CompleteTask(ctx context.Context, id string) (domain.Task, error) {
	next, err := s.State.DispatchIf(func(cur domain.AppState) (state.Action, error) {
		if _, ok := cur.Task(id); !ok {
			return nil, ErrNotFound
		}
		return state.CompleteTask{ID: id}, nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	t, _ := next.Task(id)
	s.Analytics.TrackButtonClick(ctx, "complete_task", "progress")
	return t, nil
}
