package bootstrap

import (
	"parkingbot/internal/pkg/clock"
	"parkingbot/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewClock,
	),
)

// NewClock reads wall time in APP_TIMEZONE so every component agrees on "today".
func NewClock(cfg config.Config) clock.Clock {
	return clock.NewInZone(clock.NewRealClock(), cfg.App.Location())
}
