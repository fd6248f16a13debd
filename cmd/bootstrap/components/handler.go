package components

import (
	"dental-clinic-api/internal/handler"
	"dental-clinic-api/internal/handler/api"
	"dental-clinic-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewAppointmentHandler,
		api.NewScheduleHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
