//go:build unit || e2e

package kvtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"parkingbot/internal/domain/claim"
	"parkingbot/internal/pkg/clock"
	"parkingbot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runReservationRaces drives the reservation engine from many goroutines on
// top of the backend, so the atomic operations are checked end to end.
func runReservationRaces(t *testing.T, b Backend) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	today := clock.NewMockClock(time.Date(2016, 5, 1, 9, 0, 0, 0, time.UTC))

	t.Run("concurrent claims have one winner", func(t *testing.T) {
		kv := b.New(t)
		store := usecase.NewReservationStore(kv, today, logger)
		date := mustDate(t, "2016-05-04")
		const claimants = 32

		results := make([]claim.ClaimResult, claimants)
		var wg sync.WaitGroup
		for i := range claimants {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				res, err := store.Claim(ctx, date, fmt.Sprintf("U%d", i))
				assert.NoError(t, err)
				results[i] = res
			}(i)
		}
		wg.Wait()

		winner, found, err := kv.Get(ctx, claim.Key(date))
		require.NoError(t, err)
		require.True(t, found)

		ok := 0
		for i, res := range results {
			switch res.Outcome {
			case claim.ClaimOK:
				ok++
				assert.Equal(t, fmt.Sprintf("U%d", i), winner)
			case claim.ClaimConflict:
				assert.Equal(t, winner, res.ExistingClaimantID)
			default:
				t.Errorf("claimant U%d: unexpected outcome %q", i, res.Outcome)
			}
		}
		assert.Equal(t, 1, ok)
	})

	t.Run("unclaim races the listing", func(t *testing.T) {
		kv := b.New(t)
		store := usecase.NewReservationStore(kv, today, logger)

		for round := range 10 {
			date := mustDate(t, "2016-05-10").AddDays(round)
			_, err := store.Claim(ctx, date, "U1")
			require.NoError(t, err)

			var wg sync.WaitGroup
			wg.Add(3)
			go func() {
				defer wg.Done()
				res, err := store.Unclaim(ctx, date, "U1")
				assert.NoError(t, err)
				assert.Equal(t, claim.UnclaimReleased, res.Outcome)
			}()
			for range 2 {
				go func() {
					defer wg.Done()
					_, err := store.ListUpcoming(ctx)
					assert.NoError(t, err)
				}()
			}
			wg.Wait()
		}

		claims, err := store.ListUpcoming(ctx)
		require.NoError(t, err)
		assert.Empty(t, claims)
	})
}

func mustDate(t *testing.T, s string) claim.Date {
	t.Helper()
	d, err := claim.ParseDate(s)
	require.NoError(t, err)
	return d
}
