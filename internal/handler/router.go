package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tablebook/internal/domain/staff"
	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Booking     *api.BookingHandler
	Reservation *api.ReservationHandler
	Table       *api.TableHandler
	Waitlist    *api.WaitlistHandler
	Restaurant  *api.RestaurantHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	tenantMiddleware *middleware.TenantMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware, tenantMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

// Route layout: auth and admin mount at the root because gin's tree cannot
// mix a static segment with the tenant wildcard under the same prefix; the
// guest and dashboard surfaces live under /api/:slug.
func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, tenantMiddleware *middleware.TenantMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := engine.Group("/auth")
	{
		addRoutes(auth, []route{
			{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
		})

		authRequired := auth.Group("")
		authRequired.Use(authMiddleware.RequireAuth())
		addRoutes(authRequired, []route{
			{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
		})
	}

	admin := engine.Group("/admin")
	admin.Use(authMiddleware.RequireAuth())
	admin.Use(authMiddleware.RequireRoleAtLeast(staff.RoleAdmin))
	{
		addRoutes(admin, []route{
			{Method: http.MethodGet, Path: "/restaurants", Handler: h.Restaurant.List},
			{Method: http.MethodPost, Path: "/restaurants", Handler: h.Restaurant.Create},
			{Method: http.MethodGet, Path: "/restaurants/:id", Handler: h.Restaurant.Get},
			{Method: http.MethodPut, Path: "/restaurants/:id/settings", Handler: h.Restaurant.UpdateSettings},
			{Method: http.MethodPost, Path: "/restaurants/:id/slots", Handler: h.Restaurant.CreateSlot},
			{Method: http.MethodPut, Path: "/restaurants/:id/slots/:slotId", Handler: h.Restaurant.UpdateSlot},
		})
	}

	tenantGroup := engine.Group("/api/:slug")
	tenantGroup.Use(tenantMiddleware.Resolve())
	{
		addRoutes(tenantGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Booking.GetAvailability},
			{Method: http.MethodPost, Path: "/reservations", Handler: h.Booking.CreateBooking},
			{Method: http.MethodPost, Path: "/reservations/cancel", Handler: h.Booking.CancelByPhone},
			{Method: http.MethodPost, Path: "/reservations/:id/payment-return", Handler: h.Booking.PaymentReturn},
		})

		dashboard := tenantGroup.Group("/dashboard")
		dashboard.Use(authMiddleware.RequireAuth())
		dashboard.Use(tenantMiddleware.RequireMembership())
		{
			addRoutes(dashboard, []route{
				{Method: http.MethodGet, Path: "/reservations", Handler: h.Reservation.ListForDay},
				{Method: http.MethodGet, Path: "/reservations/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPost, Path: "/reservations/:id/confirm", Handler: h.Reservation.Confirm},
				{Method: http.MethodPost, Path: "/reservations/:id/message", Handler: h.Reservation.SendMessage},
				{Method: http.MethodPost, Path: "/reservations/:id/seat", Handler: h.Reservation.Seat},
				{Method: http.MethodPost, Path: "/reservations/:id/cancel", Handler: h.Reservation.Cancel},
				{Method: http.MethodGet, Path: "/reservations/:id/messages", Handler: h.Reservation.ListMessages},
				{Method: http.MethodGet, Path: "/tables", Handler: h.Table.List},
				{Method: http.MethodPost, Path: "/tables/:id/free", Handler: h.Table.Free},
				{Method: http.MethodGet, Path: "/waitlist", Handler: h.Waitlist.List},
				{Method: http.MethodPost, Path: "/waitlist", Handler: h.Waitlist.Join},
				{Method: http.MethodPatch, Path: "/waitlist/:id", Handler: h.Waitlist.Advance},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
