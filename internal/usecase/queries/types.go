package queries

import (
	"context"
	"time"

	"dental-clinic-api/internal/domain/user"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// SlotView is one entry of the availability grid for a dentist and date.
// Time uses the "HH:MM" wire format.
type SlotView struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

type AppointmentView struct {
	ID           uuid.UUID  `json:"id"`
	DentistID    uuid.UUID  `json:"dentist_id"`
	PatientID    *uuid.UUID `json:"patient_id,omitempty"`
	PatientName  *string    `json:"patient_name,omitempty"`
	PatientEmail *string    `json:"patient_email,omitempty"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason"`
	Notes        string     `json:"notes"`
	CancelReason *string    `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type AppointmentListItem struct {
	ID        uuid.UUID `json:"id"`
	DentistID uuid.UUID `json:"dentist_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type RuleView struct {
	ID          uuid.UUID `json:"id"`
	Weekday     int       `json:"weekday"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	SlotMinutes int       `json:"slot_minutes"`
	Active      bool      `json:"active"`
}

type SlotQueries interface {
	AvailableSlots(ctx context.Context, dentistID uuid.UUID, date time.Time) ([]SlotView, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, actor uuid.UUID, role user.Role, id uuid.UUID) (*AppointmentView, error)
	ListByRequester(ctx context.Context, requester uuid.UUID, role user.Role) ([]*AppointmentListItem, error)
	ListByDentistDate(ctx context.Context, actor uuid.UUID, role user.Role, dentistID uuid.UUID, date time.Time) ([]*AppointmentListItem, error)
}

type ScheduleQueries interface {
	WeeklySchedule(ctx context.Context, dentistID uuid.UUID) ([]*RuleView, error)
}
