package readstore

import (
	"context"

	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/infra"
	"dental-clinic-api/internal/infra/db"

	"github.com/google/uuid"
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

// RulesByDentist returns only active rules, ordered so generated grids come
// out sorted per weekday without extra work downstream.
func (r *ScheduleReadStore) RulesByDentist(ctx context.Context, dentistID uuid.UUID) ([]*schedule.Rule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, dentist_id, weekday, start_time, end_time, slot_minutes, active
		FROM availability_rules
		WHERE dentist_id = $1 AND active = TRUE
		ORDER BY weekday ASC, start_time ASC
	`, dentistID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load availability rules", err)
	}
	defer rows.Close()

	var rules []*schedule.Rule
	for rows.Next() {
		var (
			id, dID     uuid.UUID
			weekday     int
			startRaw    string
			endRaw      string
			slotMinutes int
			active      bool
		)
		if err := rows.Scan(&id, &dID, &weekday, &startRaw, &endRaw, &slotMinutes, &active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability rule", err)
		}
		start, err := schedule.ParseTimeOfDay(startRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt start_time in availability rule", err)
		}
		end, err := schedule.ParseTimeOfDay(endRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt end_time in availability rule", err)
		}
		rules = append(rules, schedule.ReconstructRule(id, dID, schedule.Weekday(weekday), start, end, slotMinutes, active))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability rules", err)
	}
	return rules, nil
}
