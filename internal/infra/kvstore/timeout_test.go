//go:build unit

package kvstore

import (
	"context"
	"testing"
	"time"

	"parkingbot/internal/infra"
	"parkingbot/internal/pkg/errs"
	"parkingbot/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingStore waits for the context on every call.
type blockingStore struct {
	shared.KeyValueStore
}

func (blockingStore) Get(ctx context.Context, _ string) (string, bool, error) {
	<-ctx.Done()
	return "", false, ctx.Err()
}

func (blockingStore) Scan(ctx context.Context, _ string) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	t.Run("slow calls fail with a timeout", func(t *testing.T) {
		store := WithTimeout(blockingStore{}, 10*time.Millisecond)

		_, _, err := store.Get(context.Background(), "k")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindTimeout))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.True(t, errs.Is(err, errs.ErrStoreUnavailable))

		_, err = store.Scan(context.Background(), "claimed_date:")
		assert.True(t, infra.IsKind(err, infra.KindTimeout))
	})

	t.Run("fast calls pass through", func(t *testing.T) {
		mem := NewMemoryStore(nil)
		store := WithTimeout(mem, time.Second)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "k", "v", 0))
		value, found, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v", value)
	})

	t.Run("zero disables the wrapper", func(t *testing.T) {
		mem := NewMemoryStore(nil)
		assert.Same(t, mem, WithTimeout(mem, 0))
	})
}
