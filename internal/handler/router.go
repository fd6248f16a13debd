package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dental-clinic-api/internal/handler/api"
	"dental-clinic-api/internal/handler/middleware"
	"dental-clinic-api/internal/pkg/config"
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
	logger *slog.Logger,
	slotHandler *api.SlotHandler,
	appointmentHandler *api.AppointmentHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, slotHandler, appointmentHandler, scheduleHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	slotHandler *api.SlotHandler,
	appointmentHandler *api.AppointmentHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		dentists := apiGroup.Group("/dentists")
		{
			addRoutes(dentists, []route{
				{Method: http.MethodGet, Path: "/:id/slots", Handler: slotHandler.GetDaySlots},
				{Method: http.MethodGet, Path: "/:id/schedule", Handler: scheduleHandler.GetWeeklySchedule},
			})

			staffOnly := dentists.Group("")
			staffOnly.Use(authMiddleware.RequireAuth())
			addRoutes(staffOnly, []route{
				{Method: http.MethodPut, Path: "/:id/schedule", Handler: scheduleHandler.SaveWeeklySchedule},
				{Method: http.MethodDelete, Path: "/:id/schedule", Handler: scheduleHandler.ClearWeeklySchedule},
				{Method: http.MethodGet, Path: "/:id/appointments", Handler: appointmentHandler.ListDentistAppointments},
			})
		}

		appointments := apiGroup.Group("/appointments")
		{
			// Booking accepts guests: auth is optional, contact details fill in.
			booking := appointments.Group("")
			booking.Use(authMiddleware.OptionalAuth())
			addRoutes(booking, []route{
				{Method: http.MethodPost, Path: "", Handler: appointmentHandler.BookAppointment},
			})

			authRequired := appointments.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "", Handler: appointmentHandler.ListAppointments},
				{Method: http.MethodGet, Path: "/:id", Handler: appointmentHandler.GetAppointment},
				{Method: http.MethodPut, Path: "/:id", Handler: appointmentHandler.UpdateAppointment},
				{Method: http.MethodDelete, Path: "/:id", Handler: appointmentHandler.CancelAppointment},
			})

			// Payment confirmation callback; the payment gateway authenticates
			// with a staff-scoped service token.
			confirm := appointments.Group("")
			confirm.Use(authMiddleware.RequireAuth(), authMiddleware.RequireStaff())
			addRoutes(confirm, []route{
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: appointmentHandler.ConfirmAppointment},
			})
		}

		holds := apiGroup.Group("/holds")
		holds.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(holds, []route{
				{Method: http.MethodPost, Path: "", Handler: appointmentHandler.PlaceHold},
				{Method: http.MethodDelete, Path: "", Handler: appointmentHandler.ReleaseHold},
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
