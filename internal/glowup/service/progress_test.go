package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/pkg/idx"
	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

func newProgressService(t *testing.T) *ProgressService {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	return &ProgressService{
		State:     state.Open(context.Background(), state.Options{Logger: slogx.Discard()}),
		Catalog:   cat,
		Analytics: NewAnalytics(slogx.Discard()),
	}
}

func TestStartChallenge(t *testing.T) {
	ctx := context.Background()
	svc := newProgressService(t)

	ch, err := svc.StartChallenge(ctx, "bookworm")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ch.ID, string(idx.KindChallenge)+"_"))
	require.Equal(t, 10, ch.DurationDays)
	require.NotEmpty(t, ch.Tasks)

	// Starting the same template twice gives two challenges.
	again, err := svc.StartChallenge(ctx, "bookworm")
	require.NoError(t, err)
	require.NotEqual(t, ch.ID, again.ID)
	require.Len(t, svc.State.State().Challenges, 2)

	_, err = svc.StartChallenge(ctx, "nope")
	require.ErrorIs(t, err, catalog.ErrUnknownChallenge)
}

func TestCompleteChallenge(t *testing.T) {
	ctx := context.Background()
	svc := newProgressService(t)

	ch, err := svc.StartChallenge(ctx, "soft-mornings")
	require.NoError(t, err)

	done, err := svc.CompleteChallenge(ctx, ch.ID)
	require.NoError(t, err)
	require.True(t, done.Completed)

	_, err = svc.CompleteChallenge(ctx, "ch_missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	svc := newProgressService(t)

	due := time.Date(2026, 5, 1, 9, 0, 0, 0, time.FixedZone("AEST", 10*3600))
	task, err := svc.AddTask(ctx, " Drink water ", &due)
	require.NoError(t, err)
	require.Equal(t, "Drink water", task.Title)
	require.Equal(t, time.UTC, task.DueDate.Location())
	require.True(t, due.Equal(*task.DueDate))

	_, err = svc.AddTask(ctx, "  ", nil)
	require.ErrorIs(t, err, ErrEmptyTitle)

	done, err := svc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, done.Completed)

	// Idempotent.
	again, err := svc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, done, again)
	require.Len(t, svc.State.State().Tasks, 1)

	_, err = svc.CompleteTask(ctx, "tk_missing")
	require.ErrorIs(t, err, ErrNotFound)
}
