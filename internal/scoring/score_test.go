package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"reconnect-backend/internal/models"
)

// Wednesday. Week starts Sunday June 15.
var testNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func completedSession(created time.Time, pre, post int) models.Session {
	completedAt := created.Add(5 * time.Minute)
	return models.Session{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		ProtocolID:  "presence-drop",
		PreCalm:     pre,
		PreClarity:  pre,
		PreEnergy:   pre,
		PostCalm:    intPtr(post),
		PostClarity: intPtr(post),
		PostEnergy:  intPtr(post),
		Completed:   true,
		CreatedAt:   created,
		CompletedAt: &completedAt,
	}
}

func pendingSession(created time.Time, pre int) models.Session {
	return models.Session{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		ProtocolID: "presence-drop",
		PreCalm:    pre,
		PreClarity: pre,
		PreEnergy:  pre,
		CreatedAt:  created,
	}
}

func TestQualityForSession(t *testing.T) {
	tests := []struct {
		name     string
		pre      int
		post     int
		expected int
	}{
		{"improvement counts half", 3, 8, 65},
		{"decline never penalizes the improvement term", 8, 3, 15},
		{"max improvement", 1, 10, 95},
		{"flat high", 10, 10, 50},
		{"flat low", 1, 1, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := completedSession(testNow, tc.pre, tc.post)
			if got := QualityForSession(s); got != tc.expected {
				t.Errorf("Expected quality %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestComputeWellnessSingleSession(t *testing.T) {
	sessions := []models.Session{completedSession(testNow.Add(-time.Hour), 3, 8)}

	w := ComputeWellness(sessions, testNow)

	if w.ReconnectScore != 65 {
		t.Errorf("Expected score 65, got %d", w.ReconnectScore)
	}
	if len(w.SessionQualities) != 1 || w.SessionQualities[0].Quality != 65 {
		t.Errorf("Expected one session quality of 65, got %+v", w.SessionQualities)
	}
	if w.WeeklyResets != 1 || w.ConsistencyBonus != 0 {
		t.Errorf("Expected 1 weekly reset with no bonus, got %d resets bonus %d", w.WeeklyResets, w.ConsistencyBonus)
	}
	if w.InactivityPenalty != 0 {
		t.Errorf("Expected no inactivity penalty, got %d", w.InactivityPenalty)
	}
	if w.DaysSinceLastSession == nil || *w.DaysSinceLastSession != 0 {
		t.Errorf("Expected 0 days since last session, got %v", w.DaysSinceLastSession)
	}
	if w.CalmAverage != 8 || w.ClarityAverage != 8 || w.EnergyAverage != 8 {
		t.Errorf("Expected 8/8/8 averages, got %d/%d/%d", w.CalmAverage, w.ClarityAverage, w.EnergyAverage)
	}
}

func TestComputeWellnessConsistencyBonus(t *testing.T) {
	tests := []struct {
		name          string
		weeklyCount   int
		expectedBonus int
	}{
		{"two resets no bonus", 2, 0},
		{"three resets small bonus", 3, 5},
		{"five resets full bonus", 5, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sessions []models.Session
			for i := 0; i < tc.weeklyCount; i++ {
				sessions = append(sessions, completedSession(testNow.Add(-time.Duration(i)*time.Hour), 5, 5))
			}

			w := ComputeWellness(sessions, testNow)
			if w.ConsistencyBonus != tc.expectedBonus {
				t.Errorf("Expected bonus %d, got %d", tc.expectedBonus, w.ConsistencyBonus)
			}
			if w.WeeklyResets != tc.weeklyCount {
				t.Errorf("Expected %d weekly resets, got %d", tc.weeklyCount, w.WeeklyResets)
			}
		})
	}
}

func TestComputeWellnessInactivityPenalty(t *testing.T) {
	// Last session 5 days ago, before the current week started.
	sessions := []models.Session{completedSession(testNow.AddDate(0, 0, -5), 5, 5)}

	w := ComputeWellness(sessions, testNow)

	if w.DaysSinceLastSession == nil || *w.DaysSinceLastSession != 5 {
		t.Fatalf("Expected 5 days since last session, got %v", w.DaysSinceLastSession)
	}
	if w.InactivityPenalty != 15 {
		t.Errorf("Expected penalty 15, got %d", w.InactivityPenalty)
	}
	if w.WeeklyResets != 0 || w.ConsistencyBonus != 0 {
		t.Errorf("Expected no weekly activity, got %d resets bonus %d", w.WeeklyResets, w.ConsistencyBonus)
	}
	// Quality 25, minus penalty 15.
	if w.ReconnectScore != 10 {
		t.Errorf("Expected score 10, got %d", w.ReconnectScore)
	}
}

func TestComputeWellnessPenaltyCap(t *testing.T) {
	sessions := []models.Session{completedSession(testNow.AddDate(0, 0, -30), 5, 5)}

	w := ComputeWellness(sessions, testNow)
	if w.InactivityPenalty != 30 {
		t.Errorf("Expected penalty capped at 30, got %d", w.InactivityPenalty)
	}
}

func TestComputeWellnessClampsScore(t *testing.T) {
	t.Run("upper bound", func(t *testing.T) {
		var sessions []models.Session
		for i := 0; i < 5; i++ {
			sessions = append(sessions, completedSession(testNow.Add(-time.Duration(i)*time.Hour), 1, 10))
		}

		// Base 95 plus bonus 10 would be 105.
		w := ComputeWellness(sessions, testNow)
		if w.ReconnectScore != 100 {
			t.Errorf("Expected score clamped to 100, got %d", w.ReconnectScore)
		}
	})

	t.Run("lower bound", func(t *testing.T) {
		// Quality 5, penalty 30.
		sessions := []models.Session{completedSession(testNow.AddDate(0, 0, -8), 10, 1)}

		w := ComputeWellness(sessions, testNow)
		if w.ReconnectScore != 0 {
			t.Errorf("Expected score clamped to 0, got %d", w.ReconnectScore)
		}
	})
}

func TestComputeWellnessEmptyHistory(t *testing.T) {
	w := ComputeWellness(nil, testNow)

	if w.ReconnectScore != 0 || w.WeeklyResets != 0 || w.ConsistencyBonus != 0 {
		t.Errorf("Expected zeroed wellness, got %+v", w)
	}
	if w.DaysSinceLastSession != nil {
		t.Errorf("Expected nil days since last session, got %d", *w.DaysSinceLastSession)
	}
	if len(w.SessionQualities) != 0 {
		t.Errorf("Expected no session qualities, got %d", len(w.SessionQualities))
	}
}

func TestComputeWellnessExcludesPartialSessions(t *testing.T) {
	sessions := []models.Session{
		completedSession(testNow.Add(-time.Hour), 3, 8),
		pendingSession(testNow.Add(-2*time.Hour), 5),
	}

	w := ComputeWellness(sessions, testNow)

	if len(w.SessionQualities) != 1 {
		t.Fatalf("Expected 1 qualifying session, got %d", len(w.SessionQualities))
	}
	if w.ReconnectScore != 65 {
		t.Errorf("Expected score 65, got %d", w.ReconnectScore)
	}
	// An incomplete session is not a weekly reset either.
	if w.WeeklyResets != 1 {
		t.Errorf("Expected 1 weekly reset, got %d", w.WeeklyResets)
	}
}

func TestComputeWellnessCompletedWithoutPostRatings(t *testing.T) {
	// Completed sessions missing post ratings count toward the weekly
	// total but never feed the score.
	var sessions []models.Session
	for i := 0; i < 3; i++ {
		s := pendingSession(testNow.Add(-time.Duration(i)*time.Hour), 5)
		s.Completed = true
		sessions = append(sessions, s)
	}

	w := ComputeWellness(sessions, testNow)

	if w.WeeklyResets != 3 || w.ConsistencyBonus != 5 {
		t.Errorf("Expected 3 weekly resets with bonus 5, got %d/%d", w.WeeklyResets, w.ConsistencyBonus)
	}
	if w.ReconnectScore != 0 || len(w.SessionQualities) != 0 {
		t.Errorf("Expected no base score without qualifying sessions, got score %d with %d qualities",
			w.ReconnectScore, len(w.SessionQualities))
	}
}

func TestComputeWellnessLimitsToFiveRecent(t *testing.T) {
	var sessions []models.Session
	for i := 0; i < 7; i++ {
		sessions = append(sessions, completedSession(testNow.Add(-time.Duration(i)*time.Hour), 3, 8))
	}

	w := ComputeWellness(sessions, testNow)
	if len(w.SessionQualities) != 5 {
		t.Fatalf("Expected 5 session qualities, got %d", len(w.SessionQualities))
	}
	// Newest first.
	for i := 1; i < len(w.SessionQualities); i++ {
		if w.SessionQualities[i].Date.After(w.SessionQualities[i-1].Date) {
			t.Errorf("Expected qualities ordered newest first at index %d", i)
		}
	}
}

func TestComputeWellnessOrderIndependent(t *testing.T) {
	a := completedSession(testNow.Add(-time.Hour), 3, 8)
	b := completedSession(testNow.AddDate(0, 0, -1), 5, 6)
	c := completedSession(testNow.AddDate(0, 0, -2), 2, 9)

	w1 := ComputeWellness([]models.Session{a, b, c}, testNow)
	w2 := ComputeWellness([]models.Session{c, a, b}, testNow)

	if w1.ReconnectScore != w2.ReconnectScore {
		t.Errorf("Expected order-independent score, got %d vs %d", w1.ReconnectScore, w2.ReconnectScore)
	}
	if len(w1.SessionQualities) != len(w2.SessionQualities) {
		t.Fatalf("Expected same quality count, got %d vs %d", len(w1.SessionQualities), len(w2.SessionQualities))
	}
	for i := range w1.SessionQualities {
		if w1.SessionQualities[i].SessionID != w2.SessionQualities[i].SessionID {
			t.Errorf("Expected same quality order at index %d", i)
		}
	}
}
