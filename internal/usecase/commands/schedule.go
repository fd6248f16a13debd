package commands

import (
	"context"

	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/domain/user"
	"dental-clinic-api/internal/infra/db"
	"dental-clinic-api/internal/pkg/config"
	"dental-clinic-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WeeklyRuleInput struct {
	Weekday     int
	StartTime   string
	EndTime     string
	SlotMinutes int
	Active      bool
}

type ScheduleCommands interface {
	// SaveWeeklySchedule replaces the dentist's whole weekly template in one
	// transaction (delete then reinsert).
	SaveWeeklySchedule(ctx context.Context, actor uuid.UUID, role user.Role, dentistID uuid.UUID, rules []WeeklyRuleInput) error
	ClearWeeklySchedule(ctx context.Context, actor uuid.UUID, role user.Role, dentistID uuid.UUID) error
}

type scheduleUseCaseImpl struct {
	scheduleRepo ScheduleRepository
	pool         *pgxpool.Pool
	cfg          config.BookingConfig
}

func NewScheduleUseCase(scheduleRepo ScheduleRepository, pool *pgxpool.Pool, cfg config.BookingConfig) ScheduleCommands {
	return &scheduleUseCaseImpl{
		scheduleRepo: scheduleRepo,
		pool:         pool,
		cfg:          cfg,
	}
}

func (s *scheduleUseCaseImpl) SaveWeeklySchedule(ctx context.Context, actor uuid.UUID, role user.Role, dentistID uuid.UUID, inputs []WeeklyRuleInput) error {
	if err := authorizeScheduleAccess(actor, role, dentistID); err != nil {
		return err
	}

	rules := make([]*schedule.Rule, 0, len(inputs))
	for _, in := range inputs {
		weekday, err := schedule.NewWeekday(in.Weekday)
		if err != nil {
			return errs.Mark(err, ErrInvalidInput)
		}
		start, err := schedule.ParseTimeOfDay(in.StartTime)
		if err != nil {
			return errs.Mark(err, ErrInvalidInput)
		}
		end, err := schedule.ParseTimeOfDay(in.EndTime)
		if err != nil {
			return errs.Mark(err, ErrInvalidInput)
		}
		rule, err := schedule.NewRule(dentistID, weekday, start, end, in.SlotMinutes, in.Active)
		if err != nil {
			return errs.Mark(err, ErrInvalidInput)
		}
		rules = append(rules, rule)
	}

	_, err := db.WithDefaultRetry(ctx, s.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, s.scheduleRepo.ReplaceWeek(ctx, tx, dentistID, rules)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (s *scheduleUseCaseImpl) ClearWeeklySchedule(ctx context.Context, actor uuid.UUID, role user.Role, dentistID uuid.UUID) error {
	if err := authorizeScheduleAccess(actor, role, dentistID); err != nil {
		return err
	}

	_, err := db.WithDefaultRetry(ctx, s.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, s.scheduleRepo.Clear(ctx, tx, dentistID)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// Dentists manage only their own template; admins manage anyone's.
func authorizeScheduleAccess(actor uuid.UUID, role user.Role, dentistID uuid.UUID) error {
	if role == user.RoleAdmin {
		return nil
	}
	if role == user.RoleDentist && actor == dentistID {
		return nil
	}
	return ErrForbidden
}
