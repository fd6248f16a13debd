package appointment

import (
	"sort"

	"dental-clinic-api/internal/domain/schedule"
)

// RankAlternatives orders free candidate slots by absolute distance to the
// requested time, earlier slot first on ties, and caps the result at maxCount.
// The requested time itself is never included. Pure function; the caller is
// responsible for having filtered out occupied and held slots.
func RankAlternatives(candidates []schedule.TimeOfDay, requested schedule.TimeOfDay, maxCount int) []schedule.TimeOfDay {
	if maxCount <= 0 {
		return nil
	}

	ranked := make([]schedule.TimeOfDay, 0, len(candidates))
	for _, c := range candidates {
		if c.Equal(requested) {
			continue
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		di := abs(ranked[i].MinutesFrom(requested))
		dj := abs(ranked[j].MinutesFrom(requested))
		if di != dj {
			return di < dj
		}
		return ranked[i].Before(ranked[j])
	})

	if len(ranked) > maxCount {
		ranked = ranked[:maxCount]
	}
	return ranked
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
