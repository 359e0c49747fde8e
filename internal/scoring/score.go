package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"reconnect-backend/internal/models"
)

// SessionQuality is the per-session 0-100 score together with the raw
// ratings it was derived from. The wellness snapshot exposes exactly
// the sessions that fed the base score so the dashboard can drill into
// them.
type SessionQuality struct {
	SessionID   uuid.UUID `json:"session_id"`
	Quality     int       `json:"quality"`
	Date        time.Time `json:"date"`
	PreCalm     int       `json:"pre_calm"`
	PostCalm    int       `json:"post_calm"`
	PreClarity  int       `json:"pre_clarity"`
	PostClarity int       `json:"post_clarity"`
	PreEnergy   int       `json:"pre_energy"`
	PostEnergy  int       `json:"post_energy"`
}

// Wellness is the derived, non-persisted view of one user's session
// history. Everything here is recomputed from scratch on each call.
//
// Two scales coexist on purpose: the per-session quality is 0-100 while
// CalmAverage/ClarityAverage/EnergyAverage stay on the raw 1-10 rating
// scale. Downstream display code expects both; do not unify them.
type Wellness struct {
	ReconnectScore       int              `json:"reconnect_score"`
	SessionQualities     []SessionQuality `json:"session_qualities"`
	ConsistencyBonus     int              `json:"consistency_bonus"`
	InactivityPenalty    int              `json:"inactivity_penalty"`
	DaysSinceLastSession *int             `json:"days_since_last_session"`
	WeeklyResets         int              `json:"weekly_resets"`
	CalmAverage          int              `json:"calm_average"`
	ClarityAverage       int              `json:"clarity_average"`
	EnergyAverage        int              `json:"energy_average"`
}

// dimensionScore blends the absolute post-session level with the
// non-negative improvement over baseline, half credit each, on a 0-100
// scale. A drop below baseline never penalizes within this term.
func dimensionScore(pre, post int) float64 {
	improvement := post - pre
	if improvement < 0 {
		improvement = 0
	}
	return 0.5*float64(post*10) + 0.5*float64(improvement*10)
}

// QualityForSession scores one completed session 0-100. The session
// must have all post ratings; callers filter first.
func QualityForSession(s models.Session) int {
	calm := dimensionScore(s.PreCalm, *s.PostCalm)
	clarity := dimensionScore(s.PreClarity, *s.PostClarity)
	energy := dimensionScore(s.PreEnergy, *s.PostEnergy)
	return int(math.Round((calm + clarity + energy) / 3))
}

// ComputeWellness derives the Reconnect Score and its components from a
// user's sessions at the given instant. Sessions may arrive in any
// order. Partial sessions (missing post ratings) are excluded from
// scoring entirely, not zero-filled; the weekly consistency count is
// the one place that admits any completed session.
func ComputeWellness(sessions []models.Session, now time.Time) Wellness {
	var w Wellness

	qualifying := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed && s.HasPostRatings() {
			qualifying = append(qualifying, s)
		}
	}

	weekStart := startOfWeek(now)
	for _, s := range sessions {
		if s.Completed && !s.CreatedAt.Before(weekStart) {
			w.WeeklyResets++
		}
	}
	if w.WeeklyResets >= 5 {
		w.ConsistencyBonus = 10
	} else if w.WeeklyResets >= 3 {
		w.ConsistencyBonus = 5
	}

	if len(qualifying) == 0 {
		return w
	}

	sort.Slice(qualifying, func(i, j int) bool {
		return qualifying[i].CreatedAt.After(qualifying[j].CreatedAt)
	})

	var calmSum, claritySum, energySum int
	for _, s := range qualifying {
		calmSum += *s.PostCalm
		claritySum += *s.PostClarity
		energySum += *s.PostEnergy
	}
	n := float64(len(qualifying))
	w.CalmAverage = int(math.Round(float64(calmSum) / n))
	w.ClarityAverage = int(math.Round(float64(claritySum) / n))
	w.EnergyAverage = int(math.Round(float64(energySum) / n))

	recent := qualifying
	if len(recent) > 5 {
		recent = recent[:5]
	}
	var baseSum float64
	for _, s := range recent {
		q := QualityForSession(s)
		baseSum += float64(q)
		w.SessionQualities = append(w.SessionQualities, SessionQuality{
			SessionID:   s.ID,
			Quality:     q,
			Date:        s.CreatedAt,
			PreCalm:     s.PreCalm,
			PostCalm:    *s.PostCalm,
			PreClarity:  s.PreClarity,
			PostClarity: *s.PostClarity,
			PreEnergy:   s.PreEnergy,
			PostEnergy:  *s.PostEnergy,
		})
	}
	baseScore := baseSum / float64(len(recent))

	days := daysBetween(now, qualifying[0].CreatedAt)
	w.DaysSinceLastSession = &days
	if days >= 3 {
		penaltyDays := days - 2
		if penaltyDays > 6 {
			penaltyDays = 6
		}
		w.InactivityPenalty = penaltyDays * 5
	}

	score := int(math.Round(baseScore + float64(w.ConsistencyBonus) - float64(w.InactivityPenalty)))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	w.ReconnectScore = score

	return w
}
