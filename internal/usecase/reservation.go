package usecase

import (
	"context"
	"errors"
	"log/slog"

	"parkingbot/internal/domain/claim"
	"parkingbot/internal/pkg/clock"
	"parkingbot/internal/pkg/errs"
	"parkingbot/internal/usecase/shared"
)

var (
	ErrStoreOperationFailed = errors.New("store operation failed")
	ErrClaimContention      = errors.New("claim kept changing under concurrent updates")
)

// maxAttempts bounds the read-after-failed-write loops in Claim and Unclaim.
const maxAttempts = 3

//go:generate mockgen -source=reservation.go -destination=../../tests/mock/usecase/reservation.go -package=usecasemock
type ReservationStore interface {
	Claim(ctx context.Context, date claim.Date, claimantID string) (claim.ClaimResult, error)
	Unclaim(ctx context.Context, date claim.Date, requesterID string) (claim.UnclaimResult, error)
	ListUpcoming(ctx context.Context) ([]claim.Claim, error)
}

type reservationStoreImpl struct {
	kv     shared.KeyValueStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewReservationStore(kv shared.KeyValueStore, clock clock.Clock, logger *slog.Logger) ReservationStore {
	return &reservationStoreImpl{
		kv:     kv,
		clock:  clock,
		logger: logger,
	}
}

func (s *reservationStoreImpl) today() claim.Date {
	return claim.DateOf(s.clock.Now())
}

func (s *reservationStoreImpl) Claim(ctx context.Context, date claim.Date, claimantID string) (claim.ClaimResult, error) {
	c, err := claim.NewClaim(date, claimantID)
	if err != nil {
		return claim.ClaimResult{}, err
	}
	if c.IsExpired(s.today()) {
		return claim.ClaimResult{Outcome: claim.ClaimPast}, nil
	}

	key := claim.Key(date)
	for range maxAttempts {
		created, err := s.kv.SetIfAbsent(ctx, key, claimantID, 0)
		if err != nil {
			return claim.ClaimResult{}, storeErr(err, "failed to write claim "+key)
		}
		if created {
			s.logger.Info("date claimed", "date", date.String(), "claimant_id", claimantID)
			return claim.ClaimResult{Outcome: claim.ClaimOK}, nil
		}

		owner, found, err := s.kv.Get(ctx, key)
		if err != nil {
			return claim.ClaimResult{}, storeErr(err, "failed to read claim "+key)
		}
		if !found {
			// released between the two calls
			continue
		}
		if owner == claimantID {
			return claim.ClaimResult{Outcome: claim.ClaimAlreadyOwnedBySelf}, nil
		}
		return claim.ClaimResult{Outcome: claim.ClaimConflict, ExistingClaimantID: owner}, nil
	}
	return claim.ClaimResult{}, ErrClaimContention
}

func (s *reservationStoreImpl) Unclaim(ctx context.Context, date claim.Date, requesterID string) (claim.UnclaimResult, error) {
	key := claim.Key(date)
	for range maxAttempts {
		owner, found, err := s.kv.Get(ctx, key)
		if err != nil {
			return claim.UnclaimResult{}, storeErr(err, "failed to read claim "+key)
		}
		if !found {
			return claim.UnclaimResult{Outcome: claim.UnclaimNotClaimed}, nil
		}
		if owner != requesterID {
			return claim.UnclaimResult{Outcome: claim.UnclaimConflict, ExistingClaimantID: owner}, nil
		}

		deleted, err := s.kv.DeleteIfEquals(ctx, key, requesterID)
		if err != nil {
			return claim.UnclaimResult{}, storeErr(err, "failed to delete claim "+key)
		}
		if deleted {
			s.logger.Info("date released", "date", date.String(), "claimant_id", requesterID)
			return claim.UnclaimResult{Outcome: claim.UnclaimReleased}, nil
		}
	}
	return claim.UnclaimResult{}, ErrClaimContention
}

// ListUpcoming drops stale entries as it meets them: past dates, keys whose
// value has vanished, and keys that do not carry a date.
func (s *reservationStoreImpl) ListUpcoming(ctx context.Context) ([]claim.Claim, error) {
	keys, err := s.kv.Scan(ctx, claim.KeyPrefix)
	if err != nil {
		return nil, storeErr(err, "failed to scan claims")
	}

	today := s.today()
	claims := make([]claim.Claim, 0, len(keys))
	for _, key := range keys {
		date, err := claim.DateFromKey(key)
		if err != nil {
			if err := s.discard(ctx, key, "malformed key"); err != nil {
				return nil, err
			}
			continue
		}

		owner, found, err := s.kv.Get(ctx, key)
		if err != nil {
			return nil, storeErr(err, "failed to read claim "+key)
		}
		if !found {
			if err := s.discard(ctx, key, "missing claimant"); err != nil {
				return nil, err
			}
			continue
		}

		c, err := claim.NewClaim(date, owner)
		if err != nil {
			if err := s.discard(ctx, key, "blank claimant"); err != nil {
				return nil, err
			}
			continue
		}
		if c.IsExpired(today) {
			// a concurrent unclaim may already have removed it
			if _, err := s.kv.DeleteIfEquals(ctx, key, owner); err != nil {
				return nil, storeErr(err, "failed to expire claim "+key)
			}
			s.logger.Debug("expired claim removed", "date", date.String())
			continue
		}

		claims = claim.InsertSorted(claims, c)
	}
	return claims, nil
}

func (s *reservationStoreImpl) discard(ctx context.Context, key, reason string) error {
	s.logger.Warn("removing inconsistent claim entry", "key", key, "reason", reason)
	if err := s.kv.Delete(ctx, key); err != nil {
		return storeErr(err, "failed to delete claim "+key)
	}
	return nil
}

func storeErr(err error, msg string) error {
	return errs.Mark(errs.Wrap(err, msg), ErrStoreOperationFailed)
}
