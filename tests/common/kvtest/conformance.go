//go:build unit || e2e

package kvtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parkingbot/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backend builds an empty store for one subtest. Advance moves the store's
// notion of time forward; leave it nil when the backend cannot fake time.
type Backend struct {
	New     func(t *testing.T) shared.KeyValueStore
	Advance func(d time.Duration)
}

// Run checks the behaviour every KeyValueStore implementation must share.
func Run(t *testing.T, b Backend) {
	ctx := context.Background()

	t.Run("get on absent key", func(t *testing.T) {
		store := b.New(t)
		value, found, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		store := b.New(t)
		require.NoError(t, store.Set(ctx, "k", "v1", 0))
		require.NoError(t, store.Set(ctx, "k", "v2", 0))

		value, found, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v2", value)
	})

	t.Run("set if absent only writes once", func(t *testing.T) {
		store := b.New(t)
		ok, err := store.SetIfAbsent(ctx, "claimed_date:2016-05-08", "U1", 0)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.SetIfAbsent(ctx, "claimed_date:2016-05-08", "U2", 0)
		require.NoError(t, err)
		assert.False(t, ok)

		value, _, err := store.Get(ctx, "claimed_date:2016-05-08")
		require.NoError(t, err)
		assert.Equal(t, "U1", value)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := b.New(t)
		require.NoError(t, store.Set(ctx, "k", "v", 0))
		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "k"))

		_, found, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete if equals compares value", func(t *testing.T) {
		store := b.New(t)
		require.NoError(t, store.Set(ctx, "k", "U1", 0))

		ok, err := store.DeleteIfEquals(ctx, "k", "U2")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.DeleteIfEquals(ctx, "k", "U1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.DeleteIfEquals(ctx, "k", "U1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("scan filters by prefix", func(t *testing.T) {
		store := b.New(t)
		for _, key := range []string{"claimed_date:2016-05-08", "claimed_date:2016-05-09", "slack_user_names:2:U1", "claimed_dates"} {
			require.NoError(t, store.Set(ctx, key, "x", 0))
		}

		keys, err := store.Scan(ctx, "claimed_date:")
		require.NoError(t, err)
		sort.Strings(keys)
		assert.Equal(t, []string{"claimed_date:2016-05-08", "claimed_date:2016-05-09"}, keys)
	})

	t.Run("scan treats wildcard characters literally", func(t *testing.T) {
		store := b.New(t)
		require.NoError(t, store.Set(ctx, "a_b:1", "x", 0))
		require.NoError(t, store.Set(ctx, "axb:1", "x", 0))
		require.NoError(t, store.Set(ctx, "a*b:1", "x", 0))

		keys, err := store.Scan(ctx, "a_b:")
		require.NoError(t, err)
		assert.Equal(t, []string{"a_b:1"}, keys)

		keys, err = store.Scan(ctx, "a*b:")
		require.NoError(t, err)
		assert.Equal(t, []string{"a*b:1"}, keys)
	})

	t.Run("concurrent set if absent has one winner", func(t *testing.T) {
		store := b.New(t)
		const writers = 20

		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := range writers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok, err := store.SetIfAbsent(ctx, "contended", fmt.Sprintf("U%d", i), 0)
				assert.NoError(t, err)
				if ok {
					wins.Add(1)
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})

	runReservationRaces(t, b)

	if b.Advance == nil {
		return
	}

	t.Run("ttl expiry", func(t *testing.T) {
		store := b.New(t)
		require.NoError(t, store.Set(ctx, "short", "v", time.Minute))
		require.NoError(t, store.Set(ctx, "forever", "v", 0))

		b.Advance(2 * time.Minute)

		_, found, err := store.Get(ctx, "short")
		require.NoError(t, err)
		assert.False(t, found)

		_, found, err = store.Get(ctx, "forever")
		require.NoError(t, err)
		assert.True(t, found)

		ok, err := store.SetIfAbsent(ctx, "short", "v2", 0)
		require.NoError(t, err)
		assert.True(t, ok, "an expired entry must not block set-if-absent")
	})
}
