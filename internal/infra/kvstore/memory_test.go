//go:build unit

package kvstore

import (
	"context"
	"testing"
	"time"

	"parkingbot/internal/pkg/clock"
	"parkingbot/internal/usecase/shared"
	"parkingbot/tests/common/kvtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2016, 5, 1, 9, 0, 0, 0, time.UTC))

	kvtest.Run(t, kvtest.Backend{
		New: func(t *testing.T) shared.KeyValueStore {
			return NewMemoryStore(mockClock)
		},
		Advance: mockClock.Add,
	})
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Set(ctx, "k", "v", 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Len())

	_, _, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreExpiredEntriesHiddenFromScan(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2016, 5, 1, 9, 0, 0, 0, time.UTC))
	store := NewMemoryStore(mockClock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "slack_user_names:2:U1", "{}", time.Hour))
	require.NoError(t, store.Set(ctx, "slack_user_names:2:U2", "{}", 3*time.Hour))
	mockClock.Add(2 * time.Hour)

	keys, err := store.Scan(ctx, "slack_user_names:2:")
	require.NoError(t, err)
	assert.Equal(t, []string{"slack_user_names:2:U2"}, keys)

	ok, err := store.DeleteIfEquals(ctx, "slack_user_names:2:U1", "{}")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreDropsExpiredEntries(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*MemoryStore, *clock.MockClock, []string) {
		mockClock := clock.NewMockClock(time.Date(2016, 5, 1, 9, 0, 0, 0, time.UTC))
		store := NewMemoryStore(mockClock)
		keys := []string{"slack_user_names:2:U1", "slack_user_names:2:U2", "slack_user_names:2:U3", "slack_user_names:2:U4", "slack_user_names:2:U5"}
		for _, key := range keys {
			require.NoError(t, store.Set(ctx, key, "{}", time.Hour))
		}
		require.NoError(t, store.Set(ctx, "claimed_date:2016-05-08", "U1", 0))
		mockClock.Add(2 * time.Hour)
		return store, mockClock, keys
	}

	t.Run("get", func(t *testing.T) {
		store, _, keys := seed(t)
		for _, key := range keys {
			_, found, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, found)
		}
		assert.Equal(t, 1, store.Len())
	})

	t.Run("scan drops only its prefix", func(t *testing.T) {
		store, _, _ := seed(t)
		keys, err := store.Scan(ctx, "claimed_date:")
		require.NoError(t, err)
		assert.Equal(t, []string{"claimed_date:2016-05-08"}, keys)
		assert.Equal(t, 6, store.Len())

		keys, err = store.Scan(ctx, "slack_user_names:2:")
		require.NoError(t, err)
		assert.Empty(t, keys)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("delete if equals", func(t *testing.T) {
		store, _, keys := seed(t)
		ok, err := store.DeleteIfEquals(ctx, keys[0], "{}")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 5, store.Len())
	})

	t.Run("set if absent replaces", func(t *testing.T) {
		store, _, keys := seed(t)
		ok, err := store.SetIfAbsent(ctx, keys[0], "fresh", 0)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 6, store.Len())

		value, found, err := store.Get(ctx, keys[0])
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "fresh", value)
	})
}
