package schedule

import (
	"sort"
	"time"
)

// GenerateSlots computes the candidate slot start times for one dentist on one
// calendar date from their weekly template. Pure function: identical inputs
// yield identical output.
//
// Each matching active rule emits start times over a half-open window — a rule
// 09:00-17:00 with 30 minute slots emits 09:00 through 16:30, never 17:00.
// Overlapping rules may propose the same start time; the result is
// deduplicated and sorted ascending. A date with no matching rule yields an
// empty slice, not an error.
func GenerateSlots(date time.Time, rules []*Rule) []TimeOfDay {
	seen := make(map[TimeOfDay]struct{})
	var slots []TimeOfDay

	for _, rule := range rules {
		if !rule.AppliesTo(date) {
			continue
		}
		for t := rule.Start(); t.minutes < rule.End().minutes; t = t.AddMinutes(rule.SlotMinutes()) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			slots = append(slots, t)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Before(slots[j])
	})
	return slots
}
