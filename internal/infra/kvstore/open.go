package kvstore

import (
	"context"

	"parkingbot/internal/infra"
	"parkingbot/internal/infra/db"
	"parkingbot/internal/pkg/clock"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/usecase/shared"
)

// Open connects the backend selected by STORE_BACKEND. The returned cleanup
// is never nil on success.
func Open(ctx context.Context, cfg config.Config, c clock.Clock) (shared.KeyValueStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		client, cleanup, err := ConnectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client), cleanup, nil

	case config.StoreBackendPostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, nil, infra.WrapStoreErr(infra.KindStoreFailure, "failed to connect postgres", err)
		}
		store := NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		return store, cleanup, nil

	default:
		return NewMemoryStore(c), func() {}, nil
	}
}
