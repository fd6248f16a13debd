package writerepo

import (
	"context"
	"time"

	"dental-clinic-api/internal/domain/appointment"
	"dental-clinic-api/internal/infra"
	"dental-clinic-api/internal/infra/db"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

// Create inserts a new ledger row. A duplicate (dentist, date, time) triple
// among non-cancelled rows violates appointments_slot_active_uniq and comes
// back as a conflict-kind repository error; that constraint, not the caller's
// pre-check, is what actually prevents double booking.
func (r *AppointmentRepository) Create(ctx context.Context, tx db.DBTX, appt *appointment.Appointment) (uuid.UUID, error) {
	contact := appt.Contact()
	_, err := tx.Exec(ctx, `
		INSERT INTO appointments
			(id, dentist_id, patient_id, patient_name, patient_email,
			 date, start_time, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		appt.ID(),
		appt.DentistID(),
		appt.PatientID(),
		contact.Name,
		contact.Email,
		appt.Date().Format(dateFormat),
		appt.StartTime().String(),
		string(appt.Status()),
		appt.Reason(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create appointment", err)
	}
	return appt.ID(), nil
}

// UpdateStatus writes the transition only when the row is still in the
// expected source status. A false return means somebody else transitioned it
// first; the caller decides whether that is a replay or a real conflict.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to appointment.Status) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, string(to), id, string(from))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update appointment status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID, reason string, at time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = 'cancelled', cancel_reason = $1, cancelled_at = $2, updated_at = now()
		WHERE id = $3 AND status IN ('pending', 'confirmed')
	`, reason, at, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel appointment", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AppointmentRepository) UpdateNotes(ctx context.Context, tx db.DBTX, id uuid.UUID, notes string) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET notes = $1, updated_at = now()
		WHERE id = $2
	`, notes, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update appointment notes", err)
	}
	return tag.RowsAffected() > 0, nil
}
