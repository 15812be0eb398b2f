// Package storetest holds the behaviour every store driver must share.
package storetest

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	"github.com/stretchr/testify/require"
)

// Run exercises a driver. newStore must return an empty, migrated store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("get missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Set(ctx, store.KeyOnboardingComplete, "false"))
		require.NoError(t, s.Set(ctx, store.KeyOnboardingComplete, "true"))

		v, err := s.Get(ctx, store.KeyOnboardingComplete)
		require.NoError(t, err)
		require.Equal(t, "true", v)
	})

	t.Run("remove all tolerates missing keys", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Set(ctx, store.KeyUserProfile, `{"name":"Ava"}`))
		require.NoError(t, s.RemoveAll(ctx, store.KeyUserProfile, store.KeyOnboardingComplete))

		_, err := s.Get(ctx, store.KeyUserProfile)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("batch sets and removes together", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Set(ctx, store.KeyUserProfile, `{"name":"Ava"}`))
		require.NoError(t, s.WriteBatch(ctx, store.Batch{
			Set:    map[string]string{store.KeyOnboardingComplete: "false"},
			Remove: []string{store.KeyUserProfile},
		}))

		_, err := s.Get(ctx, store.KeyUserProfile)
		require.ErrorIs(t, err, store.ErrNotFound)

		v, err := s.Get(ctx, store.KeyOnboardingComplete)
		require.NoError(t, err)
		require.Equal(t, "false", v)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.WriteBatch(context.Background(), store.Batch{}))
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Ping(context.Background()))
	})
}
