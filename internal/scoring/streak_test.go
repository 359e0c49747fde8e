package scoring

import (
	"testing"
	"time"

	"reconnect-backend/internal/models"
)

func sessionOn(day time.Time) models.Session {
	return completedSession(day, 5, 7)
}

func TestCurrentStreak(t *testing.T) {
	// testNow is Wednesday June 18.
	day := func(offset int) time.Time {
		return testNow.AddDate(0, 0, offset).Add(-3 * time.Hour)
	}

	tests := []struct {
		name     string
		sessions []models.Session
		expected int
	}{
		{
			name:     "no sessions",
			sessions: nil,
			expected: 0,
		},
		{
			name: "three days ending today",
			sessions: []models.Session{
				sessionOn(day(-2)), sessionOn(day(-1)), sessionOn(day(0)),
				sessionOn(day(-5)), // earlier Friday, gap breaks the run
			},
			expected: 3,
		},
		{
			name:     "nothing today breaks the streak",
			sessions: []models.Session{sessionOn(day(-1)), sessionOn(day(-2))},
			expected: 0,
		},
		{
			name: "multiple sessions one day count once",
			sessions: []models.Session{
				sessionOn(day(0)), sessionOn(day(0).Add(time.Hour)),
			},
			expected: 1,
		},
		{
			name:     "incomplete sessions do not count",
			sessions: []models.Session{pendingSession(day(0), 5)},
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CurrentStreak(tc.sessions, testNow); got != tc.expected {
				t.Errorf("Expected streak %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	day := func(offset int) time.Time {
		return testNow.AddDate(0, 0, offset).Add(-3 * time.Hour)
	}

	tests := []struct {
		name     string
		sessions []models.Session
		expected int
	}{
		{
			name:     "empty history",
			sessions: nil,
			expected: 0,
		},
		{
			name:     "single day",
			sessions: []models.Session{sessionOn(day(0))},
			expected: 1,
		},
		{
			name: "run in the past beats current run",
			sessions: []models.Session{
				sessionOn(day(-10)), sessionOn(day(-9)), sessionOn(day(-8)), sessionOn(day(-7)),
				sessionOn(day(-1)), sessionOn(day(0)),
			},
			expected: 4,
		},
		{
			name: "gap splits runs",
			sessions: []models.Session{
				sessionOn(day(-4)), sessionOn(day(-3)),
				sessionOn(day(-1)), sessionOn(day(0)),
			},
			expected: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LongestStreak(tc.sessions, testNow.Location()); got != tc.expected {
				t.Errorf("Expected longest streak %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestCurrentNeverExceedsLongest(t *testing.T) {
	day := func(offset int) time.Time {
		return testNow.AddDate(0, 0, offset).Add(-3 * time.Hour)
	}
	sessions := []models.Session{
		sessionOn(day(-2)), sessionOn(day(-1)), sessionOn(day(0)),
	}

	current := CurrentStreak(sessions, testNow)
	longest := LongestStreak(sessions, testNow.Location())
	if current > longest {
		t.Errorf("Current streak %d exceeds longest %d", current, longest)
	}
	if current != 3 || longest != 3 {
		t.Errorf("Expected 3/3, got %d/%d", current, longest)
	}
}

func TestStreaksBucketMixedLocationsConsistently(t *testing.T) {
	// Two sessions on consecutive UTC days, the second carrying a +02:00
	// zone that puts its local date on the same day as the first. Both
	// streak functions must bucket in the reference location or the
	// longest streak undercounts the current one.
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	sessions := []models.Session{
		sessionOn(time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)),
		sessionOn(time.Date(2025, 6, 18, 1, 0, 0, 0, plus2)), // June 17 23:00 UTC
	}
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	current := CurrentStreak(sessions, now)
	longest := LongestStreak(sessions, now.Location())

	if current != 2 || longest != 2 {
		t.Errorf("Expected 2/2 across locations, got %d/%d", current, longest)
	}
	if current > longest {
		t.Errorf("Current streak %d exceeds longest %d", current, longest)
	}
}
