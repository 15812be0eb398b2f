package state

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"github.com/aussiebroadwan/glowup/internal/glowup/store"
)

// DefaultHydrateTimeout bounds how long Open waits on storage at cold start.
const DefaultHydrateTimeout = 3 * time.Second

// Mirror receives the persisted subset of the state after every change to it.
// Save must not block; Clear removes everything that was mirrored.
type Mirror interface {
	Save(s Snapshot)
	Clear(ctx context.Context) error
}

type Options struct {
	// Store is read once by Open. Nil starts from InitialState.
	Store store.Store

	// Mirror is optional; without one the state lives in memory only.
	Mirror Mirror

	Logger         *slog.Logger
	HydrateTimeout time.Duration
}

// Listener observes every dispatch. It runs while the dispatch lock is held and
// must not call Dispatch.
type Listener func(action Action, next domain.AppState)

// Container owns the application state. Dispatch is the only way to change it
// and dispatches are applied one at a time.
type Container struct {
	mu        sync.Mutex
	state     domain.AppState
	mirror    Mirror
	logger    *slog.Logger
	listeners []subscription
	nextID    int
	hydrated  HydrationResult
}

// HydrationResult describes how the cold start went.
type HydrationResult struct {
	Restored bool          // a persisted value was applied
	Fallback bool          // storage failed and the state started empty
	Duration time.Duration // time spent reading storage
}

// Open builds the container and hydrates it from opts.Store before returning.
// Hydration never fails: storage errors and timeouts start from InitialState.
func Open(ctx context.Context, opts Options) *Container {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.HydrateTimeout <= 0 {
		opts.HydrateTimeout = DefaultHydrateTimeout
	}

	c := &Container{
		state:  domain.InitialState(),
		mirror: opts.Mirror,
		logger: opts.Logger,
	}

	if opts.Store != nil {
		c.hydrate(ctx, opts.Store, opts.HydrateTimeout)
	}
	return c
}

func (c *Container) hydrate(ctx context.Context, st store.Store, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	snap, warnings, err := LoadSnapshot(ctx, st)
	c.hydrated.Duration = time.Since(start)

	for _, w := range warnings {
		c.logger.Warn("ignoring persisted value", "error", w)
	}

	if err != nil {
		c.hydrated.Fallback = true
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error("state hydration timed out, starting empty", "timeout", timeout, "error", err)
		} else {
			c.logger.Error("state hydration failed, starting empty", "error", err)
		}
		return
	}

	// Replayed without the mirror: the values came from storage.
	for _, a := range snap.Actions() {
		c.state = Reduce(c.state, a)
		c.hydrated.Restored = true
	}

	c.logger.Info("state hydrated",
		"authenticated", c.state.IsAuthenticated(),
		"onboarding_complete", c.state.OnboardingComplete,
		"duration_ms", c.hydrated.Duration.Milliseconds(),
	)
}

// Hydration reports how Open populated the state.
func (c *Container) Hydration() HydrationResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hydrated
}

// State returns the current state. The value must be treated as read-only.
func (c *Container) State() domain.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies a and returns the resulting state.
func (c *Container) Dispatch(a Action) domain.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(a)
}

// DispatchIf builds an action from the current state and applies it without
// letting another dispatch in between. When decide returns an error nothing is
// dispatched and the current state is returned with that error.
func (c *Container) DispatchIf(decide func(current domain.AppState) (Action, error)) (domain.AppState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := decide(c.state)
	if err != nil {
		return c.state, err
	}
	return c.apply(a), nil
}

// apply runs with c.mu held.
func (c *Container) apply(a Action) domain.AppState {
	prev := c.state
	next := Reduce(prev, a)
	c.state = next

	if c.mirror != nil {
		if before, after := SnapshotOf(prev), SnapshotOf(next); !before.Equal(after) {
			c.mirror.Save(after)
		}
	}

	c.logger.Debug("action dispatched", "action", a.Type())

	for _, sub := range c.listeners {
		sub.fn(a, next)
	}
	return next
}

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it. Listeners are
// called in the order they subscribed.
func (c *Container) Subscribe(l Listener) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, subscription{id: id, fn: l})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.listeners = slices.DeleteFunc(c.listeners, func(s subscription) bool { return s.id == id })
	}
}

// Logout clears the persisted keys and then resets the state. The reset
// happens even when clearing fails; that error is logged and returned.
func (c *Container) Logout(ctx context.Context) error {
	var clearErr error
	if c.mirror != nil {
		clearErr = c.mirror.Clear(ctx)
		if clearErr != nil {
			c.logger.Error("clearing persisted state failed", "error", clearErr)
		}
	}

	c.Dispatch(ResetState{})
	return clearErr
}
