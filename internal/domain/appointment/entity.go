package appointment

import (
	"errors"
	"strings"
	"time"

	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrPastSlot           = errors.New("slot is in the past")
	ErrMissingContact     = errors.New("guest booking requires contact name and email")
	ErrInvalidStatus      = errors.New("invalid appointment status")
	ErrAlreadyCancelled   = errors.New("appointment is already cancelled")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCancellationClosed = errors.New("cancellation window has closed")
)

// Contact identifies the booker of a guest appointment. Guest appointments
// carry no patient reference; they are reachable only through these fields.
type Contact struct {
	Name  string
	Email string
}

func (c Contact) IsZero() bool {
	return c.Name == "" && c.Email == ""
}

// Appointment is one row of the booking ledger. The (dentist, date, time)
// triple is protected by a partial unique index over non-cancelled rows; the
// entity itself never enforces that invariant.
type Appointment struct {
	id            uuid.UUID
	dentistID     uuid.UUID
	patientID     *uuid.UUID
	contact       Contact
	date          time.Time
	startTime     schedule.TimeOfDay
	status        Status
	reason        string
	notes         string
	cancelReason  *string
	cancelledAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewAppointment validates a booking request. Past-dated slots are rejected
// here, before any datastore interaction; slot occupancy is not checked at
// this layer.
func NewAppointment(
	clk clock.Clock,
	dentistID uuid.UUID,
	patientID *uuid.UUID,
	contact Contact,
	date time.Time,
	startTime schedule.TimeOfDay,
	status Status,
	reason string,
) (*Appointment, error) {
	if !status.Occupies() || !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if patientID == nil {
		if strings.TrimSpace(contact.Name) == "" || strings.TrimSpace(contact.Email) == "" {
			return nil, ErrMissingContact
		}
	}

	startAt := startTime.At(date)
	if !startAt.After(clk.Now()) {
		return nil, ErrPastSlot
	}

	return &Appointment{
		id:        uuid.New(),
		dentistID: dentistID,
		patientID: patientID,
		contact:   contact,
		date:      truncateToDate(date),
		startTime: startTime,
		status:    status,
		reason:    strings.TrimSpace(reason),
	}, nil
}

func ReconstructAppointment(
	id, dentistID uuid.UUID,
	patientID *uuid.UUID,
	contact Contact,
	date time.Time,
	startTime schedule.TimeOfDay,
	status Status,
	reason, notes string,
	cancelReason *string,
	cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:           id,
		dentistID:    dentistID,
		patientID:    patientID,
		contact:      contact,
		date:         truncateToDate(date),
		startTime:    startTime,
		status:       status,
		reason:       reason,
		notes:        notes,
		cancelReason: cancelReason,
		cancelledAt:  cancelledAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a *Appointment) ID() uuid.UUID                 { return a.id }
func (a *Appointment) DentistID() uuid.UUID          { return a.dentistID }
func (a *Appointment) PatientID() *uuid.UUID         { return a.patientID }
func (a *Appointment) Contact() Contact              { return a.contact }
func (a *Appointment) Date() time.Time               { return a.date }
func (a *Appointment) StartTime() schedule.TimeOfDay { return a.startTime }
func (a *Appointment) Status() Status                { return a.status }
func (a *Appointment) Reason() string                { return a.reason }
func (a *Appointment) Notes() string                 { return a.notes }
func (a *Appointment) CancelReason() *string         { return a.cancelReason }
func (a *Appointment) CancelledAt() *time.Time       { return a.cancelledAt }
func (a *Appointment) CreatedAt() time.Time          { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time          { return a.updatedAt }

// StartAt combines the appointment date and wall-clock start time.
func (a *Appointment) StartAt() time.Time {
	return a.startTime.At(a.date)
}

func (a *Appointment) IsGuestBooking() bool {
	return a.patientID == nil
}

// OwnedBy reports whether the requester may act on this appointment.
// Guest appointments have no owner identity and always fail this check;
// they are matched through contact details at the handler layer.
func (a *Appointment) OwnedBy(requesterID uuid.UUID) bool {
	return a.patientID != nil && *a.patientID == requesterID
}

func (a *Appointment) CanTransitionTo(next Status) bool {
	return CanTransition(a.status, next)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
