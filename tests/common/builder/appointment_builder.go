//go:build unit || e2e

package builder

import (
	"time"

	"dental-clinic-api/internal/domain/appointment"
	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/pkg/clock"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// BaseTime is the frozen "now" used across unit tests: Monday 08:00 UTC.
var BaseTime = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

// BookingDate is the default appointment day, the Tuesday after BaseTime.
var BookingDate = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

type AppointmentBuilder struct {
	dentistID uuid.UUID
	patientID *uuid.UUID
	name      string
	email     string
	date      time.Time
	timeStr   string
	status    appointment.Status
	reason    string
	now       time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	patientID := uuid.New()
	return &AppointmentBuilder{
		dentistID: uuid.New(),
		patientID: &patientID,
		name:      "Taro Yamada",
		email:     "taro@example.com",
		date:      BookingDate,
		timeStr:   "10:00",
		status:    appointment.StatusConfirmed,
		reason:    "Regular checkup",
		now:       BaseTime,
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *AppointmentBuilder) WithDentist(id uuid.UUID) *AppointmentBuilder {
	b.dentistID = id
	return b
}

func (b *AppointmentBuilder) WithGuest(name, email string) *AppointmentBuilder {
	b.patientID = nil
	b.name = name
	b.email = email
	return b
}

func (b *AppointmentBuilder) WithDate(date time.Time) *AppointmentBuilder {
	b.date = date
	return b
}

func (b *AppointmentBuilder) WithTime(t string) *AppointmentBuilder {
	b.timeStr = t
	return b
}

func (b *AppointmentBuilder) WithStatus(s appointment.Status) *AppointmentBuilder {
	b.status = s
	return b
}

func (b *AppointmentBuilder) WithNow(now time.Time) *AppointmentBuilder {
	b.now = now
	return b
}

func (b *AppointmentBuilder) BuildDomain() (*appointment.Appointment, error) {
	startTime, err := schedule.ParseTimeOfDay(b.timeStr)
	if err != nil {
		return nil, err
	}
	return appointment.NewAppointment(
		clock.NewMockClock(b.now),
		b.dentistID,
		b.patientID,
		appointment.Contact{Name: b.name, Email: b.email},
		b.date,
		startTime,
		b.status,
		b.reason,
	)
}

// BuildReserveRequestMap produces the booking request body as a mutable map so
// tests can knock fields out one at a time.
func (b *AppointmentBuilder) BuildReserveRequestMap() map[string]any {
	return map[string]any{
		"dentist_id":    b.dentistID.String(),
		"date":          b.date.Format("2006-01-02"),
		"time":          b.timeStr,
		"patient_name":  b.name,
		"patient_email": b.email,
		"reason":        b.reason,
	}
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:        uuid.New(),
		DentistID: b.dentistID,
		PatientID: b.patientID,
		Date:      b.date.Format("2006-01-02"),
		Time:      b.timeStr,
		Status:    string(b.status),
		Reason:    b.reason,
		CreatedAt: b.now,
		UpdatedAt: b.now,
	}
}
