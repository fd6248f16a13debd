package appointment

import "time"

// CancellationPolicy decides whether an appointment may still be cancelled
// relative to its start time. Enforced at the status-transition write, not
// only in the UI.
type CancellationPolicy struct {
	window time.Duration
}

// NewCancellationPolicy builds a policy with the given guard window.
// A non-positive window falls back to the 1 hour default.
func NewCancellationPolicy(window time.Duration) CancellationPolicy {
	if window <= 0 {
		window = time.Hour
	}
	return CancellationPolicy{window: window}
}

// CanCancel is true only while now is strictly more than the window before
// startAt. Exactly at the boundary cancellation is refused, as is any
// zero-value startAt (fail closed on malformed input).
func (p CancellationPolicy) CanCancel(startAt, now time.Time) bool {
	if startAt.IsZero() {
		return false
	}
	return startAt.Sub(now) > p.window
}

func (p CancellationPolicy) Window() time.Duration {
	return p.window
}
