package components

import (
	"parkingbot/internal/infra/dateparse"
	"parkingbot/internal/infra/directory"
	"parkingbot/internal/usecase/shared"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		fx.Annotate(
			directory.NewSlackDirectory,
			fx.As(new(shared.Directory)),
		),
		fx.Annotate(
			dateparse.NewParser,
			fx.As(new(shared.DateParser)),
		),
	),
)
