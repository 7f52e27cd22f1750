package bootstrap

import (
	"tablebook/internal/infra/nova"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"go.uber.org/fx"
)

var NovaModule = fx.Module("nova",
	fx.Provide(
		fx.Annotate(
			NewNovaClient,
			fx.As(new(commands.NovaGateway)),
			fx.As(new(queries.TableStatusFetcher)),
		),
	),
)

func NewNovaClient(cfg config.Config) *nova.Client {
	return nova.NewClient(cfg.Nova)
}
