package appointment

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Occupies reports whether an appointment in this status counts toward the
// one-appointment-per-slot invariant. Cancelled rows free the slot for
// rebooking.
func (s Status) Occupies() bool {
	return s != StatusCancelled
}

// CanTransition encodes the allowed status moves. Cancelled and completed are
// terminal.
func CanTransition(from, to Status) bool {
	if !to.IsValid() || to == from {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}
