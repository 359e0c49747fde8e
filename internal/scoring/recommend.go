package scoring

import (
	"sort"

	"reconnect-backend/internal/models"
)

// DimensionAverages carries the latest 1-10 dimension averages into the
// recommender. Zero means "no data"; a zeroed dimension never counts as
// low.
type DimensionAverages struct {
	Calm    int `json:"calm"`
	Clarity int `json:"clarity"`
	Energy  int `json:"energy"`
}

// hourBandCategories maps the local hour to an ordered category pair:
// 05-09 focus+reset, 09-12 focus+energy, 12-15 energy+reset,
// 15-18 energy+focus, 18-21 calm+reset, 21-05 calm+reset.
func hourBandCategories(hour int) [2]string {
	switch {
	case hour >= 5 && hour < 9:
		return [2]string{models.CategoryFocus, models.CategoryReset}
	case hour >= 9 && hour < 12:
		return [2]string{models.CategoryFocus, models.CategoryEnergy}
	case hour >= 12 && hour < 15:
		return [2]string{models.CategoryEnergy, models.CategoryReset}
	case hour >= 15 && hour < 18:
		return [2]string{models.CategoryEnergy, models.CategoryFocus}
	case hour >= 18 && hour < 21:
		return [2]string{models.CategoryCalm, models.CategoryReset}
	default:
		return [2]string{models.CategoryCalm, models.CategoryReset}
	}
}

// Recommend ranks the protocol catalog into a 2-3 entry list for the
// given local hour and dimension averages. Deterministic: same inputs,
// same list. Low energy/calm averages (>0 and <6) are prepended ahead
// of the time-of-day picks, lowest score first; when both are low a
// reset protocol is prepended ahead of everything.
func Recommend(nowHour int, averages DimensionAverages, protocols []models.Protocol) []models.Protocol {
	firstByCategory := func(category string) *models.Protocol {
		for i := range protocols {
			if protocols[i].Category == category {
				return &protocols[i]
			}
		}
		return nil
	}

	var recommendations []models.Protocol
	for _, category := range hourBandCategories(nowHour) {
		if p := firstByCategory(category); p != nil {
			recommendations = append(recommendations, *p)
		}
	}

	contains := func(id string) bool {
		for _, p := range recommendations {
			if p.ID == id {
				return true
			}
		}
		return false
	}
	prepend := func(p *models.Protocol) {
		recommendations = append([]models.Protocol{*p}, recommendations...)
	}

	// Only energy and calm drive score overrides; clarity has no
	// dedicated protocol category mapping here.
	lowCandidates := []struct {
		score    int
		category string
	}{
		{averages.Energy, models.CategoryEnergy},
		{averages.Calm, models.CategoryCalm},
	}
	sort.SliceStable(lowCandidates, func(i, j int) bool {
		return lowCandidates[i].score < lowCandidates[j].score
	})

	lowCount := 0
	for _, c := range lowCandidates {
		if c.score > 0 && c.score < 6 {
			lowCount++
			if p := firstByCategory(c.category); p != nil && !contains(p.ID) {
				prepend(p)
			}
		}
	}

	// Everything is low: lead with a full reset.
	if lowCount >= 2 {
		if p := firstByCategory(models.CategoryReset); p != nil && !contains(p.ID) {
			prepend(p)
		}
	}

	if len(recommendations) < 2 {
		for i := range protocols {
			if len(recommendations) >= 3 {
				break
			}
			if !contains(protocols[i].ID) {
				recommendations = append(recommendations, protocols[i])
			}
		}
	}

	seen := make(map[string]bool, len(recommendations))
	unique := recommendations[:0]
	for _, p := range recommendations {
		if !seen[p.ID] {
			seen[p.ID] = true
			unique = append(unique, p)
		}
	}
	if len(unique) > 3 {
		unique = unique[:3]
	}
	return unique
}
