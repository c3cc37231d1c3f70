package usecase

import (
	"context"
	"log/slog"

	"parkingbot/internal/domain/identity"
	"parkingbot/internal/pkg/errs"
	"parkingbot/internal/usecase/shared"
)

//go:generate mockgen -source=identity.go -destination=../../tests/mock/usecase/identity.go -package=usecasemock
type IdentityCache interface {
	Resolve(ctx context.Context, userID string, preferFullName bool) (string, error)
}

type identityCacheImpl struct {
	kv        shared.KeyValueStore
	directory shared.Directory
	logger    *slog.Logger
}

func NewIdentityCache(kv shared.KeyValueStore, directory shared.Directory, logger *slog.Logger) IdentityCache {
	return &identityCacheImpl{
		kv:        kv,
		directory: directory,
		logger:    logger,
	}
}

// Resolve never fails because of the directory; an unknown id or an outage
// yields the sentinel name. Only a failing cache read is reported.
func (c *identityCacheImpl) Resolve(ctx context.Context, userID string, preferFullName bool) (string, error) {
	rec, err := c.record(ctx, userID)
	if err != nil {
		return "", err
	}
	return rec.SelectName(preferFullName), nil
}

func (c *identityCacheImpl) record(ctx context.Context, userID string) (*identity.Record, error) {
	key := identity.Key(userID)

	raw, found, err := c.kv.Get(ctx, key)
	if err != nil {
		return nil, storeErr(err, "failed to read cached identity "+key)
	}
	if found {
		rec, decodeErr := identity.Decode(raw)
		if decodeErr == nil {
			return rec, nil
		}
		c.logger.Warn("discarding unreadable identity record", "key", key, "error", decodeErr)
	}

	rec := c.lookup(ctx, userID)

	encoded, err := rec.Encode()
	if err != nil {
		c.logger.Warn("failed to encode identity record", "user_id", userID, "error", err)
		return rec, nil
	}
	// the fetched record is still good for this request
	if err := c.kv.Set(ctx, key, encoded, identity.CacheTTL); err != nil {
		c.logger.Warn("failed to cache identity record", "key", key, "error", err)
	}
	return rec, nil
}

func (c *identityCacheImpl) lookup(ctx context.Context, userID string) *identity.Record {
	if userID == "" {
		return identity.NewSentinel(userID)
	}

	rec, err := c.directory.Lookup(ctx, userID)
	switch {
	case err == nil && rec != nil:
		rec.ID = userID
		return rec
	case errs.Is(err, errs.ErrUserNotFound):
		c.logger.Warn("user not found in directory, using sentinel identity", "user_id", userID)
	default:
		c.logger.Warn("directory lookup failed, using sentinel identity", "user_id", userID, "error", err)
	}
	return identity.NewSentinel(userID)
}
