package scoring

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"reconnect-backend/internal/models"
)

// EvaluateAchievements recomputes achievement progress from the full
// session log, one result per catalog entry. There is no persisted
// prior state: a completed achievement's CompletedAt is the evaluation
// instant, every time. Callers must not treat it as a stable historical
// date.
//
// Dispatch is a closed set keyed on achievement id; the catalog has
// exactly four shapes and a generic rule engine would overshoot.
func EvaluateAchievements(defs []models.Achievement, protocols []models.Protocol, sessions []models.Session, userID uuid.UUID, now time.Time) []models.UserAchievement {
	categoryOf := make(map[string]string, len(protocols))
	for _, p := range protocols {
		categoryOf[p.ID] = p.Category
	}

	results := make([]models.UserAchievement, 0, len(defs))
	for _, def := range defs {
		var progress int

		switch def.ID {
		case "weekly-reset-streak":
			progress = countCompletedSince(sessions, startOfWeek(now))

		case "morning-focus-challenge":
			progress = longestConsecutiveMorningRun(sessions, categoryOf, def.Requirements.ProtocolType)

		case "stress-reset-sprint":
			weekStart := startOfWeek(now)
			for _, s := range sessions {
				if s.Completed && categoryOf[s.ProtocolID] == def.Requirements.ProtocolType && !s.CreatedAt.Before(weekStart) {
					progress++
				}
			}

		case "team-challenge":
			// Placeholder team aggregation: solo monthly count times a
			// fixed multiplier, capped at the goal. A real team feed
			// would replace this.
			monthly := countCompletedSince(sessions, startOfMonth(now))
			progress = monthly * 5
			if progress > def.Requirements.Count {
				progress = def.Requirements.Count
			}
		}

		ua := models.UserAchievement{
			UserID:        userID,
			AchievementID: def.ID,
			Progress:      progress,
			Completed:     progress >= def.Requirements.Count,
		}
		if ua.Completed {
			completedAt := now
			ua.CompletedAt = &completedAt
		}
		results = append(results, ua)
	}
	return results
}

func countCompletedSince(sessions []models.Session, cutoff time.Time) int {
	count := 0
	for _, s := range sessions {
		if s.Completed && !s.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count
}

// longestConsecutiveMorningRun scans completed sessions of the given
// protocol category that started before noon, newest first, and counts
// the longest run where the day gap between adjacent qualifying
// sessions is exactly one. Any other gap, including a second session on
// the same day, restarts the run.
func longestConsecutiveMorningRun(sessions []models.Session, categoryOf map[string]string, category string) int {
	var mornings []time.Time
	for _, s := range sessions {
		if s.Completed && categoryOf[s.ProtocolID] == category && s.CreatedAt.Hour() < 12 {
			mornings = append(mornings, s.CreatedAt)
		}
	}
	if len(mornings) == 0 {
		return 0
	}

	sort.Slice(mornings, func(i, j int) bool { return mornings[i].After(mornings[j]) })

	longest, run := 1, 1
	for i := 1; i < len(mornings); i++ {
		if daysBetween(mornings[i-1], mornings[i]) == 1 {
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
