package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reconnect-backend/internal/catalog"
	"reconnect-backend/internal/models"
	"reconnect-backend/internal/repository"
	"reconnect-backend/internal/scoring"
)

// UserStats is the full dashboard snapshot: the wellness score engine
// output plus streaks, completion rate and time-on-protocol totals.
type UserStats struct {
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	TotalSessions  int `json:"total_sessions"`
	TotalMinutes   int `json:"total_minutes"`
	CompletionRate int `json:"completion_rate"`

	scoring.Wellness
}

// StatsService orchestrates the pure engines over repository data. The
// engines recompute everything from the session log on each call; the
// only state here is a short-TTL Redis cache of the marshalled
// snapshot, invalidated when a session completes.
type StatsService struct {
	sessionRepo *repository.SessionRepo
	redis       *redis.Client
	cacheTTL    time.Duration
}

func NewStatsService(sessionRepo *repository.SessionRepo, redisClient *redis.Client, cacheTTL time.Duration) *StatsService {
	return &StatsService{
		sessionRepo: sessionRepo,
		redis:       redisClient,
		cacheTTL:    cacheTTL,
	}
}

func statsCacheKey(userID uuid.UUID) string { return "stats:" + userID.String() }

// GetStats computes the wellness snapshot for one user at now. A
// repository failure degrades to an empty session list: the caller
// always gets well-defined zeroed stats, never an error for "no data".
func (s *StatsService) GetStats(ctx context.Context, userID uuid.UUID, now time.Time) *UserStats {
	if cached, err := s.redis.Get(ctx, statsCacheKey(userID)).Result(); err == nil {
		var stats UserStats
		if json.Unmarshal([]byte(cached), &stats) == nil {
			return &stats
		}
	}

	sessions, err := s.sessionRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		log.Printf("stats: failed to fetch sessions for %s, using empty history: %v", userID, err)
		sessions = nil
	}

	stats := ComputeUserStats(sessions, now)

	if data, err := json.Marshal(stats); err == nil {
		s.redis.Set(ctx, statsCacheKey(userID), data, s.cacheTTL)
	}

	return stats
}

// ComputeUserStats is the pure assembly of the snapshot; split out so
// tests can pin the clock without Redis or Postgres.
func ComputeUserStats(sessions []models.Session, now time.Time) *UserStats {
	stats := &UserStats{
		Wellness:      scoring.ComputeWellness(sessions, now),
		CurrentStreak: scoring.CurrentStreak(sessions, now),
		LongestStreak: scoring.LongestStreak(sessions, now.Location()),
	}

	completed := 0
	for _, sess := range sessions {
		if !sess.Completed {
			continue
		}
		completed++
		if p := catalog.ProtocolByID(sess.ProtocolID); p != nil {
			stats.TotalMinutes += p.Duration
		}
	}
	stats.TotalSessions = completed
	if len(sessions) > 0 {
		stats.CompletionRate = int(math.Round(float64(completed) / float64(len(sessions)) * 100))
	}

	return stats
}

// Recommendations returns the ranked protocol list for the user's
// latest dimension averages at the given instant.
func (s *StatsService) Recommendations(ctx context.Context, userID uuid.UUID, now time.Time) []models.Protocol {
	stats := s.GetStats(ctx, userID, now)
	averages := scoring.DimensionAverages{
		Calm:    stats.CalmAverage,
		Clarity: stats.ClarityAverage,
		Energy:  stats.EnergyAverage,
	}
	return scoring.Recommend(now.Hour(), averages, catalog.Protocols)
}

// Achievements evaluates the full achievement catalog for the user.
func (s *StatsService) Achievements(ctx context.Context, userID uuid.UUID, now time.Time) []models.UserAchievement {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		log.Printf("stats: failed to fetch sessions for achievements of %s: %v", userID, err)
		sessions = nil
	}
	return scoring.EvaluateAchievements(catalog.Achievements, catalog.Protocols, sessions, userID, now)
}

// InvalidateStats drops the cached snapshot and notifies the user's
// live dashboards that a recompute is due.
func (s *StatsService) InvalidateStats(ctx context.Context, userID uuid.UUID) {
	s.redis.Del(ctx, statsCacheKey(userID))

	event, _ := json.Marshal(map[string]string{"type": "stats_updated"})
	s.redis.Publish(ctx, "user_updates:"+userID.String(), event)
}
