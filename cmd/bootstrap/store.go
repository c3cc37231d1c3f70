package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"parkingbot/internal/infra/kvstore"
	"parkingbot/internal/pkg/clock"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/usecase/shared"

	"go.uber.org/fx"
)

const storeConnectTimeout = 10 * time.Second

var StoreModule = fx.Module("store",
	fx.Provide(
		NewKeyValueStore,
	),
)

func NewKeyValueStore(lc fx.Lifecycle, cfg config.Config, c clock.Clock, logger *slog.Logger) (shared.KeyValueStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeConnectTimeout)
	defer cancel()

	store, cleanup, err := kvstore.Open(ctx, cfg, c)
	if err != nil {
		return nil, err
	}
	logger.Info("キーバリューストアに接続しました", "backend", cfg.Store.Backend, "timeout", cfg.Store.Timeout)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return kvstore.WithTimeout(store, cfg.Store.Timeout), nil
}
