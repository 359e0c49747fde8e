package scoring

import (
	"testing"

	"reconnect-backend/internal/catalog"
	"reconnect-backend/internal/models"
)

func recommendedIDs(protocols []models.Protocol) []string {
	ids := make([]string, 0, len(protocols))
	for _, p := range protocols {
		ids = append(ids, p.ID)
	}
	return ids
}

func assertIDs(t *testing.T, got []models.Protocol, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, recommendedIDs(got))
	}
	for i, id := range expected {
		if got[i].ID != id {
			t.Fatalf("Expected %v, got %v", expected, recommendedIDs(got))
		}
	}
}

func TestRecommendTimeOfDayBands(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		expected []string
	}{
		{"early morning favors focus and reset", 6, []string{"peak-focus", "presence-drop"}},
		{"late morning favors focus and energy", 10, []string{"peak-focus", "reset-recharge"}},
		{"early afternoon favors energy and reset", 13, []string{"reset-recharge", "presence-drop"}},
		{"late afternoon favors energy and focus", 16, []string{"reset-recharge", "peak-focus"}},
		{"evening favors calm and reset", 19, []string{"unplug-recover", "presence-drop"}},
		{"night falls back to calm and reset", 23, []string{"unplug-recover", "presence-drop"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Recommend(tc.hour, DimensionAverages{}, catalog.Protocols)
			assertIDs(t, got, tc.expected)
		})
	}
}

func TestRecommendLowDimensionOverrides(t *testing.T) {
	t.Run("low energy prepends the energy protocol", func(t *testing.T) {
		got := Recommend(19, DimensionAverages{Calm: 8, Clarity: 8, Energy: 3}, catalog.Protocols)
		assertIDs(t, got, []string{"reset-recharge", "unplug-recover", "presence-drop"})
	})

	t.Run("low calm prepends the calm protocol", func(t *testing.T) {
		got := Recommend(10, DimensionAverages{Calm: 4, Clarity: 8, Energy: 8}, catalog.Protocols)
		assertIDs(t, got, []string{"unplug-recover", "peak-focus", "reset-recharge"})
	})

	t.Run("both low leads with a full reset", func(t *testing.T) {
		got := Recommend(10, DimensionAverages{Calm: 4, Clarity: 8, Energy: 4}, catalog.Protocols)
		assertIDs(t, got, []string{"presence-drop", "unplug-recover", "peak-focus"})
	})

	t.Run("zero averages never count as low", func(t *testing.T) {
		got := Recommend(10, DimensionAverages{}, catalog.Protocols)
		assertIDs(t, got, []string{"peak-focus", "reset-recharge"})
	})
}

func TestRecommendProperties(t *testing.T) {
	averages := []DimensionAverages{
		{},
		{Calm: 3, Clarity: 3, Energy: 3},
		{Calm: 9, Clarity: 9, Energy: 9},
		{Calm: 5, Clarity: 7, Energy: 2},
	}

	for hour := 0; hour < 24; hour++ {
		for _, avg := range averages {
			got := Recommend(hour, avg, catalog.Protocols)

			if len(got) < 2 || len(got) > 3 {
				t.Fatalf("hour %d averages %+v: expected 2-3 recommendations, got %d", hour, avg, len(got))
			}

			seen := make(map[string]bool)
			for _, p := range got {
				if seen[p.ID] {
					t.Fatalf("hour %d averages %+v: duplicate recommendation %s", hour, avg, p.ID)
				}
				seen[p.ID] = true
			}

			again := Recommend(hour, avg, catalog.Protocols)
			for i := range got {
				if again[i].ID != got[i].ID {
					t.Fatalf("hour %d averages %+v: recommendations not deterministic", hour, avg)
				}
			}
		}
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	got := Recommend(10, DimensionAverages{Calm: 3}, nil)
	if len(got) != 0 {
		t.Errorf("Expected no recommendations from empty catalog, got %d", len(got))
	}
}
