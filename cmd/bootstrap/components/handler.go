package components

import (
	"tablebook/internal/handler"
	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		api.NewBookingHandler,
		api.NewReservationHandler,
		api.NewTableHandler,
		api.NewWaitlistHandler,
		api.NewRestaurantHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
		NewTenantMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(auth commands.AuthCommands, users commands.UserRepository, cfg config.Config) *api.AuthHandler {
	return api.NewAuthHandler(auth, users, cfg.JWT, cfg.Cookie)
}

func NewTenantMiddleware(restaurants middleware.RestaurantFinder, users middleware.UserFinder, cfg config.Config) *middleware.TenantMiddleware {
	return middleware.NewTenantMiddleware(restaurants, users, cfg.Tenant.BaseDomain)
}

func NewHandlers(
	auth *api.AuthHandler,
	booking *api.BookingHandler,
	reservation *api.ReservationHandler,
	table *api.TableHandler,
	waitlist *api.WaitlistHandler,
	restaurant *api.RestaurantHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Booking:     booking,
		Reservation: reservation,
		Table:       table,
		Waitlist:    waitlist,
		Restaurant:  restaurant,
	}
}
