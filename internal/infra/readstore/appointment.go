package readstore

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/internal/domain/appointment"
	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/infra"
	"dental-clinic-api/internal/infra/db"
	"dental-clinic-api/internal/usecase/commands"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const dateFormat = "2006-01-02"

// Statuses that occupy a slot; mirrors appointment.Status.Occupies.
const activeStatuses = "('pending', 'confirmed', 'completed')"

type AppointmentReadStore struct {
	db db.DBTX
}

func NewAppointmentReadStore(dbtx db.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{db: dbtx}
}

func (r *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, dentist_id, patient_id, patient_name, patient_email,
		       date, start_time, status, reason, notes,
		       cancel_reason, cancelled_at, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	view, err := scanAppointmentView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}
	return view, nil
}

// ViewByID satisfies the command-side read port with the same row shape.
func (r *AppointmentReadStore) ViewByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	return r.FindByID(ctx, id)
}

func (r *AppointmentReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*commands.AppointmentSnapshot, error) {
	var (
		snap      commands.AppointmentSnapshot
		startTime string
		status    string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, dentist_id, patient_id, date, start_time, status
		FROM appointments
		WHERE id = $1
	`, id).Scan(&snap.ID, &snap.DentistID, &snap.PatientID, &snap.Date, &startTime, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load appointment snapshot", err)
	}

	t, err := schedule.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt start_time in appointment row", err)
	}
	snap.StartTime = t
	snap.Status = appointment.Status(status)
	return &snap, nil
}

func (r *AppointmentReadStore) IsSlotAvailable(ctx context.Context, dentistID uuid.UUID, date time.Time, t schedule.TimeOfDay, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE dentist_id = $1
			  AND date = $2
			  AND start_time = $3
			  AND status IN `+activeStatuses+`
			  AND ($4::uuid IS NULL OR id <> $4)
		)
	`, dentistID, date.Format(dateFormat), t.String(), excludeID).Scan(&exists)
	if err != nil {
		// Never guess availability on a failed read.
		return false, infra.WrapRepoErr("failed to check slot availability", err)
	}
	return !exists, nil
}

func (r *AppointmentReadStore) OccupiedTimes(ctx context.Context, dentistID uuid.UUID, date time.Time) (map[schedule.TimeOfDay]struct{}, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_time
		FROM appointments
		WHERE dentist_id = $1
		  AND date = $2
		  AND status IN `+activeStatuses+`
	`, dentistID, date.Format(dateFormat))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load occupied slots", err)
	}
	defer rows.Close()

	occupied := make(map[schedule.TimeOfDay]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied slot", err)
		}
		t, err := schedule.ParseTimeOfDay(raw)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt start_time in appointment row", err)
		}
		occupied[t] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate occupied slots", err)
	}
	return occupied, nil
}

func (r *AppointmentReadStore) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*queries.AppointmentListItem, error) {
	return r.list(ctx, `
		SELECT id, dentist_id, date, start_time, status, reason, created_at
		FROM appointments
		WHERE patient_id = $1
		ORDER BY date DESC, start_time DESC
	`, patientID)
}

func (r *AppointmentReadStore) FindByDentist(ctx context.Context, dentistID uuid.UUID) ([]*queries.AppointmentListItem, error) {
	return r.list(ctx, `
		SELECT id, dentist_id, date, start_time, status, reason, created_at
		FROM appointments
		WHERE dentist_id = $1
		ORDER BY date DESC, start_time DESC
	`, dentistID)
}

func (r *AppointmentReadStore) FindByDentistDate(ctx context.Context, dentistID uuid.UUID, date time.Time) ([]*queries.AppointmentListItem, error) {
	return r.list(ctx, `
		SELECT id, dentist_id, date, start_time, status, reason, created_at
		FROM appointments
		WHERE dentist_id = $1 AND date = $2
		ORDER BY start_time ASC
	`, dentistID, date.Format(dateFormat))
}

func (r *AppointmentReadStore) list(ctx context.Context, sql string, args ...any) ([]*queries.AppointmentListItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	var items []*queries.AppointmentListItem
	for rows.Next() {
		var (
			item      queries.AppointmentListItem
			date      time.Time
			startTime string
		)
		if err := rows.Scan(&item.ID, &item.DentistID, &date, &startTime, &item.Status, &item.Reason, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment row", err)
		}
		item.Date = date.Format(dateFormat)
		item.Time = startTime
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointment rows", err)
	}
	return items, nil
}

func scanAppointmentView(row pgx.Row) (*queries.AppointmentView, error) {
	var (
		view      queries.AppointmentView
		date      time.Time
		startTime string
	)
	err := row.Scan(
		&view.ID,
		&view.DentistID,
		&view.PatientID,
		&view.PatientName,
		&view.PatientEmail,
		&date,
		&startTime,
		&view.Status,
		&view.Reason,
		&view.Notes,
		&view.CancelReason,
		&view.CancelledAt,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.Date = date.Format(dateFormat)
	view.Time = startTime
	return &view, nil
}
