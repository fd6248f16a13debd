//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"dental-clinic-api/internal/domain/appointment"
	"dental-clinic-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppointment(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		appt, err := builder.NewAppointmentBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, appt)

		assert.NotEqual(t, uuid.Nil, appt.ID())
		assert.Equal(t, appointment.StatusConfirmed, appt.Status())
		assert.Equal(t, "Regular checkup", appt.Reason())
		assert.False(t, appt.IsGuestBooking())
	})

	t.Run("guest booking requires contact details", func(t *testing.T) {
		cases := []struct {
			name  string
			build func(*builder.AppointmentBuilder)
			errIs error
		}{
			{
				name:  "guest with full contact",
				build: func(b *builder.AppointmentBuilder) { b.WithGuest("Hanako Sato", "hanako@example.com") },
			},
			{
				name:  "guest without name",
				build: func(b *builder.AppointmentBuilder) { b.WithGuest("", "hanako@example.com") },
				errIs: appointment.ErrMissingContact,
			},
			{
				name:  "guest without email",
				build: func(b *builder.AppointmentBuilder) { b.WithGuest("Hanako Sato", "") },
				errIs: appointment.ErrMissingContact,
			},
			{
				name:  "guest with whitespace contact",
				build: func(b *builder.AppointmentBuilder) { b.WithGuest("   ", "  ") },
				errIs: appointment.ErrMissingContact,
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				appt, err := builder.NewAppointmentBuilder().With(c.build).BuildDomain()
				if c.errIs == nil {
					require.NoError(t, err)
					assert.True(t, appt.IsGuestBooking())
				} else {
					require.Nil(t, appt)
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})

	t.Run("past slots are rejected", func(t *testing.T) {
		// Now is already past the requested start.
		_, err := builder.NewAppointmentBuilder().
			WithNow(builder.BookingDate.Add(11 * time.Hour)).
			WithTime("10:00").
			BuildDomain()

		require.ErrorIs(t, err, appointment.ErrPastSlot)
	})

	t.Run("slot at the current instant is rejected", func(t *testing.T) {
		_, err := builder.NewAppointmentBuilder().
			WithNow(builder.BookingDate.Add(10 * time.Hour)).
			WithTime("10:00").
			BuildDomain()

		require.ErrorIs(t, err, appointment.ErrPastSlot)
	})

	t.Run("cancelled is not a creatable status", func(t *testing.T) {
		_, err := builder.NewAppointmentBuilder().
			WithStatus(appointment.StatusCancelled).
			BuildDomain()

		require.ErrorIs(t, err, appointment.ErrInvalidStatus)
	})

	t.Run("ownership", func(t *testing.T) {
		appt, err := builder.NewAppointmentBuilder().BuildDomain()
		require.NoError(t, err)

		require.NotNil(t, appt.PatientID())
		assert.True(t, appt.OwnedBy(*appt.PatientID()))
		assert.False(t, appt.OwnedBy(uuid.New()))

		guest, err := builder.NewAppointmentBuilder().
			WithGuest("Hanako Sato", "hanako@example.com").
			BuildDomain()
		require.NoError(t, err)
		assert.False(t, guest.OwnedBy(uuid.New()))
	})

	t.Run("StartAt combines date and time", func(t *testing.T) {
		appt, err := builder.NewAppointmentBuilder().WithTime("14:30").BuildDomain()
		require.NoError(t, err)

		expected := time.Date(2026, 3, 3, 14, 30, 0, 0, time.UTC)
		assert.Equal(t, expected, appt.StartAt())
	})
}
