//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"dental-clinic-api/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tuesday
var tuesday = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

func mustRule(t *testing.T, weekday int, start, end string, slotMinutes int, active bool) *schedule.Rule {
	t.Helper()
	wd, err := schedule.NewWeekday(weekday)
	require.NoError(t, err)
	rule, err := schedule.NewRule(uuid.New(), wd, mustTime(t, start), mustTime(t, end), slotMinutes, active)
	require.NoError(t, err)
	return rule
}

func slotStrings(slots []schedule.TimeOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestGenerateSlots(t *testing.T) {
	t.Run("full day grid is half open", func(t *testing.T) {
		rules := []*schedule.Rule{mustRule(t, 2, "09:00", "17:00", 30, true)}

		slots := schedule.GenerateSlots(tuesday, rules)

		require.Len(t, slots, 16)
		assert.Equal(t, "09:00", slots[0].String())
		assert.Equal(t, "16:30", slots[len(slots)-1].String())
	})

	t.Run("stops before a slot that would start at the end time", func(t *testing.T) {
		rules := []*schedule.Rule{mustRule(t, 2, "09:00", "10:00", 30, true)}

		slots := schedule.GenerateSlots(tuesday, rules)

		assert.Equal(t, []string{"09:00", "09:30"}, slotStrings(slots))
	})

	t.Run("duration that does not divide the window", func(t *testing.T) {
		rules := []*schedule.Rule{mustRule(t, 2, "09:00", "09:50", 30, true)}

		slots := schedule.GenerateSlots(tuesday, rules)

		// 09:30 starts inside the window even though it runs past 09:50.
		assert.Equal(t, []string{"09:00", "09:30"}, slotStrings(slots))
	})

	t.Run("no rule for the weekday yields empty", func(t *testing.T) {
		rules := []*schedule.Rule{mustRule(t, 3, "09:00", "17:00", 30, true)}

		slots := schedule.GenerateSlots(tuesday, rules)

		assert.Empty(t, slots)
	})

	t.Run("inactive rules are skipped", func(t *testing.T) {
		rules := []*schedule.Rule{mustRule(t, 2, "09:00", "17:00", 30, false)}

		slots := schedule.GenerateSlots(tuesday, rules)

		assert.Empty(t, slots)
	})

	t.Run("split shift produces both windows sorted", func(t *testing.T) {
		rules := []*schedule.Rule{
			mustRule(t, 2, "14:00", "15:00", 30, true),
			mustRule(t, 2, "09:00", "10:00", 30, true),
		}

		slots := schedule.GenerateSlots(tuesday, rules)

		assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, slotStrings(slots))
	})

	t.Run("overlapping rules deduplicate", func(t *testing.T) {
		rules := []*schedule.Rule{
			mustRule(t, 2, "09:00", "10:00", 30, true),
			mustRule(t, 2, "09:30", "10:30", 30, true),
		}

		slots := schedule.GenerateSlots(tuesday, rules)

		assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStrings(slots))
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		rules := []*schedule.Rule{mustRule(t, 2, "09:00", "12:00", 20, true)}

		first := schedule.GenerateSlots(tuesday, rules)
		second := schedule.GenerateSlots(tuesday, rules)

		if diff := cmp.Diff(first, second, cmp.AllowUnexported(schedule.TimeOfDay{})); diff != "" {
			t.Errorf("slot grid mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestNewRule(t *testing.T) {
	wd, err := schedule.NewWeekday(2)
	require.NoError(t, err)

	t.Run("start must precede end", func(t *testing.T) {
		_, err := schedule.NewRule(uuid.New(), wd, mustTime(t, "17:00"), mustTime(t, "09:00"), 30, true)
		require.ErrorIs(t, err, schedule.ErrInvalidWindow)

		_, err = schedule.NewRule(uuid.New(), wd, mustTime(t, "09:00"), mustTime(t, "09:00"), 30, true)
		require.ErrorIs(t, err, schedule.ErrInvalidWindow)
	})

	t.Run("duration must be positive", func(t *testing.T) {
		_, err := schedule.NewRule(uuid.New(), wd, mustTime(t, "09:00"), mustTime(t, "17:00"), 0, true)
		require.ErrorIs(t, err, schedule.ErrInvalidDuration)
	})

	t.Run("weekday bounds", func(t *testing.T) {
		_, err := schedule.NewWeekday(7)
		require.ErrorIs(t, err, schedule.ErrInvalidWeekday)
		_, err = schedule.NewWeekday(-1)
		require.ErrorIs(t, err, schedule.ErrInvalidWeekday)
	})

	t.Run("weekday matches Go convention", func(t *testing.T) {
		// 2026-03-01 is a Sunday.
		sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, schedule.Weekday(0), schedule.WeekdayOf(sunday))
		assert.Equal(t, schedule.Weekday(2), schedule.WeekdayOf(tuesday))
	})
}
