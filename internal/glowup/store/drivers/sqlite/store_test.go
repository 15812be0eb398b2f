package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	"github.com/aussiebroadwan/glowup/internal/glowup/store/drivers/sqlite"
	"github.com/aussiebroadwan/glowup/internal/glowup/store/storetest"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, newMemoryStore)
}

func TestMigrationsAreRepeatable(t *testing.T) {
	s := newMemoryStore(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "glowup.db")

	first, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.ApplyMigrations())
	require.NoError(t, first.Set(ctx, store.KeyOnboardingComplete, "true"))
	require.NoError(t, first.Close())

	second, err := sqlite.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	require.NoError(t, second.ApplyMigrations())

	v, err := second.Get(ctx, store.KeyOnboardingComplete)
	require.NoError(t, err)
	require.Equal(t, "true", v)
}

func TestClosedStoreReportsIOErrors(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Close())

	ctx := context.Background()
	_, err = s.Get(ctx, store.KeyUserProfile)
	require.ErrorIs(t, err, store.ErrIO)

	err = s.RemoveAll(ctx, store.SnapshotKeys...)
	require.ErrorIs(t, err, store.ErrIO)
}
