package commands

import (
	"context"
	"time"

	"dental-clinic-api/internal/domain/appointment"
	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/infra/db"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// Write-side snapshot so commands do not depend on read-side view types for
// validation decisions.
type AppointmentSnapshot struct {
	ID        uuid.UUID
	DentistID uuid.UUID
	PatientID *uuid.UUID
	Date      time.Time
	StartTime schedule.TimeOfDay
	Status    appointment.Status
}

// StartAt combines date and wall-clock time for policy evaluation.
func (s *AppointmentSnapshot) StartAt() time.Time {
	return s.StartTime.At(s.Date)
}

type AppointmentRepository interface {
	Create(ctx context.Context, tx db.DBTX, appt *appointment.Appointment) (uuid.UUID, error)
	// UpdateStatus performs a status-conditional write; false means the row was
	// not in the expected `from` status (a concurrent transition won).
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to appointment.Status) (bool, error)
	// Cancel transitions any still-active status to cancelled, recording the
	// reason and timestamp. False means the appointment was no longer active.
	Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID, reason string, at time.Time) (bool, error)
	UpdateNotes(ctx context.Context, tx db.DBTX, id uuid.UUID, notes string) (bool, error)
}

type ScheduleRepository interface {
	// ReplaceWeek swaps a dentist's entire weekly template: full delete then
	// reinsert, never per-rule patching.
	ReplaceWeek(ctx context.Context, tx db.DBTX, dentistID uuid.UUID, rules []*schedule.Rule) error
	Clear(ctx context.Context, tx db.DBTX, dentistID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type AppointmentReads interface {
	SnapshotByID(ctx context.Context, id uuid.UUID) (*AppointmentSnapshot, error)
	ViewByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error)
	// IsSlotAvailable is false iff a non-cancelled appointment occupies the
	// tuple, ignoring excludeID when provided (self-exclusion on reschedule).
	IsSlotAvailable(ctx context.Context, dentistID uuid.UUID, date time.Time, t schedule.TimeOfDay, excludeID *uuid.UUID) (bool, error)
	OccupiedTimes(ctx context.Context, dentistID uuid.UUID, date time.Time) (map[schedule.TimeOfDay]struct{}, error)
}

type ScheduleReads interface {
	RulesByDentist(ctx context.Context, dentistID uuid.UUID) ([]*schedule.Rule, error)
}

// HoldStore keeps short-lived reserve-then-pay holds. Expiry is the store's
// responsibility (TTL); an expired hold simply stops existing.
type HoldStore interface {
	// Place returns false when the slot is already held by someone else.
	Place(ctx context.Context, dentistID uuid.UUID, date time.Time, t schedule.TimeOfDay, holder string, ttl time.Duration) (bool, error)
	// Release removes the hold only if holder matches.
	Release(ctx context.Context, dentistID uuid.UUID, date time.Time, t schedule.TimeOfDay, holder string) error
	// Held maps each still-held candidate time to its holder token.
	Held(ctx context.Context, dentistID uuid.UUID, date time.Time, times []schedule.TimeOfDay) (map[schedule.TimeOfDay]string, error)
}
