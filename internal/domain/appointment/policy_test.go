//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"dental-clinic-api/internal/domain/appointment"

	"github.com/stretchr/testify/assert"
)

func TestCancellationPolicy(t *testing.T) {
	policy := appointment.NewCancellationPolicy(time.Hour)
	startAt := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		now       time.Time
		canCancel bool
	}{
		{name: "well before the window", now: startAt.Add(-24 * time.Hour), canCancel: true},
		{name: "one second outside the window", now: startAt.Add(-time.Hour - time.Second), canCancel: true},
		{name: "exactly at the boundary", now: startAt.Add(-time.Hour), canCancel: false},
		{name: "inside the window", now: startAt.Add(-30 * time.Minute), canCancel: false},
		{name: "after the start time", now: startAt.Add(time.Minute), canCancel: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.canCancel, policy.CanCancel(startAt, c.now))
		})
	}

	t.Run("zero start time fails closed", func(t *testing.T) {
		assert.False(t, policy.CanCancel(time.Time{}, time.Now()))
	})

	t.Run("non-positive window falls back to one hour", func(t *testing.T) {
		fallback := appointment.NewCancellationPolicy(0)
		assert.Equal(t, time.Hour, fallback.Window())

		assert.True(t, fallback.CanCancel(startAt, startAt.Add(-61*time.Minute)))
		assert.False(t, fallback.CanCancel(startAt, startAt.Add(-59*time.Minute)))
	})
}
