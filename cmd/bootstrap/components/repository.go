package components

import (
	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"
	repo_impl "tablebook/internal/infra/repository"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(queries.ReservationReader)),
			fx.As(new(queries.ReservationCounter)),
		),
		fx.Annotate(
			repo_impl.NewSlotRepository,
			fx.As(new(commands.SlotRepository)),
			fx.As(new(commands.SlotWriter)),
			fx.As(new(queries.SlotReader)),
		),
		fx.Annotate(
			repo_impl.NewTableRepository,
			fx.As(new(commands.TableRepository)),
			fx.As(new(queries.TableReader)),
		),
		fx.Annotate(
			repo_impl.NewMessageRepository,
			fx.As(new(commands.MessageRepository)),
			fx.As(new(queries.MessageReader)),
		),
		fx.Annotate(
			repo_impl.NewWaitlistRepository,
			fx.As(new(commands.WaitlistRepository)),
			fx.As(new(queries.WaitlistReader)),
		),
		fx.Annotate(
			repo_impl.NewRestaurantRepository,
			fx.As(new(commands.RestaurantRepository)),
			fx.As(new(middleware.RestaurantFinder)),
			fx.As(new(api.RestaurantLister)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
			fx.As(new(middleware.UserFinder)),
		),
	),
)
