package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeekday  = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidWindow   = errors.New("start time must be before end time")
	ErrInvalidDuration = errors.New("slot duration must be positive")
)

// Weekday follows Go's time.Weekday convention: 0 = Sunday .. 6 = Saturday.
// This is the single day-indexing convention for the whole system; rows are
// stored and transported with the same numbering.
type Weekday int

func NewWeekday(d int) (Weekday, error) {
	if d < 0 || d > 6 {
		return 0, ErrInvalidWeekday
	}
	return Weekday(d), nil
}

func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday())
}

// Rule is one line of a dentist's weekly recurring availability template.
// The slot duration does not have to divide the window evenly; generation
// simply stops once the next slot would run past the end time.
type Rule struct {
	id          uuid.UUID
	dentistID   uuid.UUID
	weekday     Weekday
	start       TimeOfDay
	end         TimeOfDay
	slotMinutes int
	active      bool
}

func NewRule(dentistID uuid.UUID, weekday Weekday, start, end TimeOfDay, slotMinutes int, active bool) (*Rule, error) {
	if weekday < 0 || weekday > 6 {
		return nil, ErrInvalidWeekday
	}
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}
	if slotMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Rule{
		id:          uuid.New(),
		dentistID:   dentistID,
		weekday:     weekday,
		start:       start,
		end:         end,
		slotMinutes: slotMinutes,
		active:      active,
	}, nil
}

func ReconstructRule(id, dentistID uuid.UUID, weekday Weekday, start, end TimeOfDay, slotMinutes int, active bool) *Rule {
	return &Rule{
		id:          id,
		dentistID:   dentistID,
		weekday:     weekday,
		start:       start,
		end:         end,
		slotMinutes: slotMinutes,
		active:      active,
	}
}

func (r *Rule) ID() uuid.UUID        { return r.id }
func (r *Rule) DentistID() uuid.UUID { return r.dentistID }
func (r *Rule) Weekday() Weekday     { return r.weekday }
func (r *Rule) Start() TimeOfDay     { return r.start }
func (r *Rule) End() TimeOfDay       { return r.end }
func (r *Rule) SlotMinutes() int     { return r.slotMinutes }
func (r *Rule) Active() bool         { return r.active }

func (r *Rule) AppliesTo(date time.Time) bool {
	return r.active && r.weekday == WeekdayOf(date)
}
