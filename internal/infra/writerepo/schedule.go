package writerepo

import (
	"context"

	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/infra"
	"dental-clinic-api/internal/infra/db"

	"github.com/google/uuid"
)

type ScheduleRepository struct{}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{}
}

// ReplaceWeek swaps the entire weekly template inside the caller's
// transaction. Delete-then-insert keeps the operation idempotent and avoids
// per-rule diffing.
func (r *ScheduleRepository) ReplaceWeek(ctx context.Context, tx db.DBTX, dentistID uuid.UUID, rules []*schedule.Rule) error {
	if _, err := tx.Exec(ctx, `DELETE FROM availability_rules WHERE dentist_id = $1`, dentistID); err != nil {
		return infra.WrapRepoErr("failed to clear availability rules", err)
	}

	for _, rule := range rules {
		_, err := tx.Exec(ctx, `
			INSERT INTO availability_rules
				(id, dentist_id, weekday, start_time, end_time, slot_minutes, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			rule.ID(),
			rule.DentistID(),
			int(rule.Weekday()),
			rule.Start().String(),
			rule.End().String(),
			rule.SlotMinutes(),
			rule.Active(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert availability rule", err)
		}
	}
	return nil
}

func (r *ScheduleRepository) Clear(ctx context.Context, tx db.DBTX, dentistID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM availability_rules WHERE dentist_id = $1`, dentistID); err != nil {
		return infra.WrapRepoErr("failed to clear availability rules", err)
	}
	return nil
}
