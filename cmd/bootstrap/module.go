package bootstrap

import (
	"parkingbot/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything short of HTTP; parkingctl runs on it alone.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	StoreModule,
	components.InfraModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	components.HandlerModule,
)
