package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"reconnect-backend/internal/models"
)

var statsNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func statsSession(created time.Time, completed bool) models.Session {
	post := 8
	s := models.Session{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		ProtocolID: "presence-drop",
		PreCalm:    3,
		PreClarity: 3,
		PreEnergy:  3,
		CreatedAt:  created,
	}
	if completed {
		completedAt := created.Add(5 * time.Minute)
		s.PostCalm = &post
		s.PostClarity = &post
		s.PostEnergy = &post
		s.Completed = true
		s.CompletedAt = &completedAt
	}
	return s
}

func TestComputeUserStats(t *testing.T) {
	sessions := []models.Session{
		statsSession(statsNow.Add(-time.Hour), true),
		statsSession(statsNow.AddDate(0, 0, -1), true),
		statsSession(statsNow.Add(-2*time.Hour), false),
	}

	stats := ComputeUserStats(sessions, statsNow)

	if stats.TotalSessions != 2 {
		t.Errorf("Expected 2 completed sessions, got %d", stats.TotalSessions)
	}
	// Two completed presence-drop sessions at 3 minutes each.
	if stats.TotalMinutes != 6 {
		t.Errorf("Expected 6 total minutes, got %d", stats.TotalMinutes)
	}
	if stats.CompletionRate != 67 {
		t.Errorf("Expected 67%% completion rate, got %d", stats.CompletionRate)
	}
	if stats.CurrentStreak != 2 || stats.LongestStreak != 2 {
		t.Errorf("Expected 2/2 streaks, got %d/%d", stats.CurrentStreak, stats.LongestStreak)
	}
	if stats.ReconnectScore != 65 {
		t.Errorf("Expected score 65, got %d", stats.ReconnectScore)
	}
}

func TestComputeUserStatsEmpty(t *testing.T) {
	stats := ComputeUserStats(nil, statsNow)

	if stats.TotalSessions != 0 || stats.TotalMinutes != 0 || stats.CompletionRate != 0 {
		t.Errorf("Expected zeroed totals, got %+v", stats)
	}
	if stats.CurrentStreak != 0 || stats.LongestStreak != 0 {
		t.Errorf("Expected zero streaks, got %d/%d", stats.CurrentStreak, stats.LongestStreak)
	}
	if stats.ReconnectScore != 0 {
		t.Errorf("Expected zero score, got %d", stats.ReconnectScore)
	}
}

func TestComputeUserStatsUnknownProtocolMinutes(t *testing.T) {
	s := statsSession(statsNow.Add(-time.Hour), true)
	s.ProtocolID = "retired-protocol"

	stats := ComputeUserStats([]models.Session{s}, statsNow)
	if stats.TotalMinutes != 0 {
		t.Errorf("Expected unknown protocol to contribute no minutes, got %d", stats.TotalMinutes)
	}
	if stats.TotalSessions != 1 {
		t.Errorf("Expected session still counted, got %d", stats.TotalSessions)
	}
}
