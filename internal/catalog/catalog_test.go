package catalog

import (
	"testing"

	"reconnect-backend/internal/models"
)

func TestProtocolCatalog(t *testing.T) {
	if len(Protocols) != 5 {
		t.Fatalf("Expected 5 protocols, got %d", len(Protocols))
	}

	seen := make(map[string]bool)
	for _, p := range Protocols {
		if seen[p.ID] {
			t.Errorf("Duplicate protocol id %s", p.ID)
		}
		seen[p.ID] = true

		if p.Duration <= 0 {
			t.Errorf("Protocol %s has non-positive duration %d", p.ID, p.Duration)
		}
		switch p.Category {
		case models.CategoryFocus, models.CategoryEnergy, models.CategoryCalm, models.CategoryReset:
		default:
			t.Errorf("Protocol %s has unknown category %q", p.ID, p.Category)
		}
	}
}

func TestProtocolByID(t *testing.T) {
	p := ProtocolByID("peak-focus")
	if p == nil {
		t.Fatal("Expected peak-focus in catalog")
	}
	if p.Category != models.CategoryFocus || p.Duration != 5 {
		t.Errorf("Unexpected peak-focus entry: %+v", p)
	}

	if ProtocolByID("does-not-exist") != nil {
		t.Error("Expected nil for unknown protocol id")
	}
}

func TestAchievementCatalog(t *testing.T) {
	if len(Achievements) != 4 {
		t.Fatalf("Expected 4 achievements, got %d", len(Achievements))
	}

	expected := map[string]int{
		AchievementWeeklyResetStreak: 3,
		AchievementMorningFocus:      3,
		AchievementStressResetSprint: 2,
		AchievementTeamChallenge:     50,
	}
	for _, a := range Achievements {
		goal, ok := expected[a.ID]
		if !ok {
			t.Errorf("Unexpected achievement id %s", a.ID)
			continue
		}
		if a.Requirements.Count != goal {
			t.Errorf("Achievement %s: expected goal %d, got %d", a.ID, goal, a.Requirements.Count)
		}
	}
}
