package queries

import (
	"context"
	"time"

	"dental-clinic-api/internal/domain/schedule"

	"github.com/google/uuid"
)

type ScheduleViewRepo interface {
	RulesByDentist(ctx context.Context, dentistID uuid.UUID) ([]*schedule.Rule, error)
}

type OccupancyViewRepo interface {
	OccupiedTimes(ctx context.Context, dentistID uuid.UUID, date time.Time) (map[schedule.TimeOfDay]struct{}, error)
}

type HoldViewRepo interface {
	Held(ctx context.Context, dentistID uuid.UUID, date time.Time, times []schedule.TimeOfDay) (map[schedule.TimeOfDay]string, error)
}

type slotQueriesImpl struct {
	scheduleRepo  ScheduleViewRepo
	occupancyRepo OccupancyViewRepo
	holdRepo      HoldViewRepo
}

func NewSlotQueries(scheduleRepo ScheduleViewRepo, occupancyRepo OccupancyViewRepo, holdRepo HoldViewRepo) SlotQueries {
	return &slotQueriesImpl{
		scheduleRepo:  scheduleRepo,
		occupancyRepo: occupancyRepo,
		holdRepo:      holdRepo,
	}
}

// AvailableSlots computes the day grid from the dentist's weekly template and
// marks each slot occupied when a live appointment or an unexpired hold claims
// it. The result is only a snapshot: booking re-verifies availability.
func (q *slotQueriesImpl) AvailableSlots(ctx context.Context, dentistID uuid.UUID, date time.Time) ([]SlotView, error) {
	rules, err := q.scheduleRepo.RulesByDentist(ctx, dentistID)
	if err != nil {
		return nil, err
	}

	slots := schedule.GenerateSlots(date, rules)
	if len(slots) == 0 {
		return []SlotView{}, nil
	}

	occupied, err := q.occupancyRepo.OccupiedTimes(ctx, dentistID, date)
	if err != nil {
		return nil, err
	}
	held, err := q.holdRepo.Held(ctx, dentistID, date, slots)
	if err != nil {
		return nil, err
	}

	views := make([]SlotView, len(slots))
	for i, t := range slots {
		_, taken := occupied[t]
		_, onHold := held[t]
		views[i] = SlotView{
			Time:        t.String(),
			IsAvailable: !taken && !onHold,
		}
	}
	return views, nil
}
