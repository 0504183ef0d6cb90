package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"transfer-portal/internal/domain/user"
	"transfer-portal/internal/handler/api"
	"transfer-portal/internal/handler/middleware"
	"transfer-portal/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	rideHandler *api.RideHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, rideHandler, webhookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	rideHandler *api.RideHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/code/:code", Handler: bookingHandler.GetBookingByCode},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.ModifyBooking},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/submit", Handler: bookingHandler.SubmitForPayment},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: bookingHandler.RecordPayment},
				{Method: http.MethodGet, Path: "/:id/cancellation-quote", Handler: bookingHandler.QuoteCancellation},
				{Method: http.MethodGet, Path: "/:id/ride", Handler: rideHandler.GetRideForBooking},
			})
		}

		rides := apiGroup.Group("/rides")
		rides.Use(authMiddleware.RequireAuth())
		rides.Use(authMiddleware.RequireRole(user.RoleSupplier, user.RoleAdmin))
		{
			addRoutes(rides, []route{
				{Method: http.MethodPost, Path: "/:id/assign", Handler: rideHandler.AssignDriver},
				{Method: http.MethodPost, Path: "/:id/status", Handler: rideHandler.AdvanceRide},
			})
		}

		webhooks := apiGroup.Group("/webhooks/subscriptions")
		webhooks.Use(authMiddleware.RequireAuth())
		{
			addRoutes(webhooks, []route{
				{Method: http.MethodPost, Path: "", Handler: webhookHandler.CreateSubscription},
				{Method: http.MethodGet, Path: "", Handler: webhookHandler.ListSubscriptions},
				{Method: http.MethodGet, Path: "/:id", Handler: webhookHandler.GetSubscription},
				{Method: http.MethodDelete, Path: "/:id", Handler: webhookHandler.DeactivateSubscription},
				{Method: http.MethodPost, Path: "/:id/reactivate", Handler: webhookHandler.ReactivateSubscription},
				{Method: http.MethodPost, Path: "/:id/rotate-secret", Handler: webhookHandler.RotateSecret},
				{Method: http.MethodGet, Path: "/:id/deliveries", Handler: webhookHandler.ListDeliveries},
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
