package scoring

import (
	"sort"
	"time"

	"reconnect-backend/internal/models"
)

// CurrentStreak counts consecutive calendar days ending today (in now's
// location) with at least one completed session. Callers pass the
// sessions of a single user; the engine does not filter by user id.
func CurrentStreak(sessions []models.Session, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	byDay := make(map[string]bool)
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		byDay[dayKey(s.CreatedAt.In(now.Location()))] = true
	}

	streak := 0
	for day := startOfDay(now); byDay[dayKey(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LongestStreak finds the longest run of calendar-consecutive days with
// a completed session anywhere in the history. A single active day is a
// run of length 1. Days are bucketed in loc; callers pass the same
// location CurrentStreak buckets in, otherwise sessions whose
// timestamps carry different zones can land in different days for the
// two functions and the longest streak can undercount the current one.
func LongestStreak(sessions []models.Session, loc *time.Location) int {
	seen := make(map[string]bool)
	var days []time.Time
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		day := startOfDay(s.CreatedAt.In(loc))
		if key := dayKey(day); !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
