package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"github.com/aussiebroadwan/glowup/internal/glowup/state"
	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	"github.com/aussiebroadwan/glowup/internal/glowup/store/drivers/memory"
	"github.com/aussiebroadwan/glowup/pkg/slogx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gatedStore records every batch and can hold writes until released.
type gatedStore struct {
	*memory.Store

	mu      sync.Mutex
	batches []store.Batch
	gate    chan struct{} // nil: writes pass straight through
	entered chan struct{}
	fail    error
}

func newGatedStore() *gatedStore {
	return &gatedStore{Store: memory.NewStore()}
}

func (g *gatedStore) hold() {
	g.gate = make(chan struct{})
	g.entered = make(chan struct{}, 16)
}

func (g *gatedStore) WriteBatch(ctx context.Context, b store.Batch) error {
	if g.gate != nil {
		g.entered <- struct{}{}
		<-g.gate
	}

	g.mu.Lock()
	g.batches = append(g.batches, b)
	fail := g.fail
	g.mu.Unlock()

	if fail != nil {
		return store.WrapIO("write_batch", "", fail)
	}
	return g.Store.WriteBatch(ctx, b)
}

func (g *gatedStore) written() []store.Batch {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]store.Batch(nil), g.batches...)
}

func snapshotNamed(t *testing.T, name string, onboarded bool) state.Snapshot {
	t.Helper()
	p, err := domain.NewUserProfile(name)
	require.NoError(t, err)
	return state.Snapshot{User: &p, OnboardingComplete: onboarded}
}

func TestPersisterWritesSnapshots(t *testing.T) {
	ctx := context.Background()
	st := newGatedStore()
	p := NewPersister(st, slogx.Discard(), time.Second)
	p.Start()
	defer p.Stop()

	p.Save(snapshotNamed(t, "Ava", true))
	require.NoError(t, p.Flush(ctx))

	snap, warnings, err := state.LoadSnapshot(ctx, st)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.True(t, snap.OnboardingComplete)
	require.Equal(t, "Ava", snap.User.Name)

	t.Run("zero snapshot removes both keys", func(t *testing.T) {
		p.Save(state.Snapshot{})
		require.NoError(t, p.Flush(ctx))
		require.Zero(t, st.Len())
	})
}

func TestPersisterCoalescesPendingSnapshots(t *testing.T) {
	ctx := context.Background()
	st := newGatedStore()
	st.hold()

	p := NewPersister(st, slogx.Discard(), time.Second)
	p.Start()

	p.Save(snapshotNamed(t, "first", false))
	<-st.entered // first write is in flight

	p.Save(snapshotNamed(t, "second", false))
	p.Save(snapshotNamed(t, "third", true))

	close(st.gate)
	require.NoError(t, p.Flush(ctx))
	p.Stop()

	batches := st.written()
	require.Len(t, batches, 2)
	require.Contains(t, batches[1].Set[store.KeyUserProfile], `"name":"third"`)
	require.Equal(t, "true", batches[1].Set[store.KeyOnboardingComplete])
}

func TestPersisterFlushHonoursContext(t *testing.T) {
	st := newGatedStore()
	st.hold()

	p := NewPersister(st, slogx.Discard(), time.Second)
	p.Start()
	p.Save(snapshotNamed(t, "Ava", false))
	<-st.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, p.Flush(ctx), context.DeadlineExceeded)

	close(st.gate)
	p.Stop()
}

func TestPersisterClear(t *testing.T) {
	ctx := context.Background()

	t.Run("removes persisted keys", func(t *testing.T) {
		st := newGatedStore()
		p := NewPersister(st, slogx.Discard(), time.Second)
		p.Start()
		defer p.Stop()

		p.Save(snapshotNamed(t, "Ava", true))
		require.NoError(t, p.Flush(ctx))
		require.Equal(t, 2, st.Len())

		require.NoError(t, p.Clear(ctx))
		require.Zero(t, st.Len())
	})

	t.Run("drops the pending snapshot", func(t *testing.T) {
		st := newGatedStore()
		p := NewPersister(st, slogx.Discard(), time.Second)

		// Not started: the snapshot stays pending until Clear drops it.
		p.Save(snapshotNamed(t, "Ava", true))
		require.NoError(t, p.Clear(ctx))
		require.NoError(t, p.Flush(ctx))

		p.Start()
		p.Stop()
		require.Empty(t, st.written())
		require.Zero(t, st.Len())
	})

	t.Run("reports storage failures", func(t *testing.T) {
		p := NewPersister(failingStore{Store: memory.NewStore()}, slogx.Discard(), time.Second)
		require.ErrorIs(t, p.Clear(ctx), store.ErrIO)
	})
}

func TestPersisterSwallowsWriteFailures(t *testing.T) {
	ctx := context.Background()
	st := newGatedStore()
	st.fail = errors.New("disk full")

	p := NewPersister(st, slogx.Discard(), time.Second)
	p.Start()
	defer p.Stop()

	p.Save(snapshotNamed(t, "Ava", true))
	require.NoError(t, p.Flush(ctx))
	require.Len(t, st.written(), 1)
	require.Zero(t, st.Len())
}

func TestPersisterStopDrains(t *testing.T) {
	ctx := context.Background()
	st := newGatedStore()
	p := NewPersister(st, slogx.Discard(), time.Second)
	p.Start()

	p.Save(snapshotNamed(t, "Ava", true))
	p.Stop()
	p.Stop() // idempotent

	v, err := st.Get(ctx, store.KeyOnboardingComplete)
	require.NoError(t, err)
	require.Equal(t, "true", v)

	// Saves after Stop are dropped.
	p.Save(snapshotNamed(t, "Bea", false))
	require.NoError(t, p.Flush(ctx))
	require.Len(t, st.written(), 1)
}

// failingStore fails every write and removal.
type failingStore struct {
	*memory.Store
}

func (failingStore) WriteBatch(context.Context, store.Batch) error {
	return store.WrapIO("write_batch", "", errors.New("disk full"))
}

func (failingStore) RemoveAll(_ context.Context, keys ...string) error {
	return store.WrapIO("remove", keys[0], errors.New("disk full"))
}
