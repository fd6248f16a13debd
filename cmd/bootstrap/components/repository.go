package components

import (
	"dental-clinic-api/internal/infra/db"
	"dental-clinic-api/internal/infra/holdstore"
	"dental-clinic-api/internal/infra/readstore"
	"dental-clinic-api/internal/infra/writerepo"
	"dental-clinic-api/internal/usecase/commands"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			writerepo.NewAppointmentRepository,
			fx.As(new(commands.AppointmentRepository)),
		),
		fx.Annotate(
			writerepo.NewScheduleRepository,
			fx.As(new(commands.ScheduleRepository)),
		),
		fx.Annotate(
			writerepo.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		// Read-side stores serve both the command pre-checks and the queries.
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(commands.AppointmentReads)),
			fx.As(new(queries.AppointmentViewRepo)),
			fx.As(new(queries.OccupancyViewRepo)),
		),
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(commands.ScheduleReads)),
			fx.As(new(queries.ScheduleViewRepo)),
		),
		fx.Annotate(
			holdstore.NewRedisHoldStore,
			fx.As(new(commands.HoldStore)),
			fx.As(new(queries.HoldViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
