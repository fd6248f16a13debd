package queries

import (
	"context"

	"dental-clinic-api/internal/domain/schedule"

	"github.com/google/uuid"
)

type scheduleQueriesImpl struct {
	repo ScheduleViewRepo
}

func NewScheduleQueries(repo ScheduleViewRepo) ScheduleQueries {
	return &scheduleQueriesImpl{repo: repo}
}

func (q *scheduleQueriesImpl) WeeklySchedule(ctx context.Context, dentistID uuid.UUID) ([]*RuleView, error) {
	rules, err := q.repo.RulesByDentist(ctx, dentistID)
	if err != nil {
		return nil, err
	}

	views := make([]*RuleView, len(rules))
	for i, r := range rules {
		views[i] = toRuleView(r)
	}
	return views, nil
}

func toRuleView(r *schedule.Rule) *RuleView {
	return &RuleView{
		ID:          r.ID(),
		Weekday:     int(r.Weekday()),
		StartTime:   r.Start().String(),
		EndTime:     r.End().String(),
		SlotMinutes: r.SlotMinutes(),
		Active:      r.Active(),
	}
}
