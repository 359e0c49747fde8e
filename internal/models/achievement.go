package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TimeframeDaily   = "daily"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
)

type AchievementRequirements struct {
	Count        int    `json:"count"`
	Timeframe    string `json:"timeframe"`
	ProtocolType string `json:"protocol_type,omitempty"`
	Consecutive  bool   `json:"consecutive"`
}

// Achievement is a static catalog entry with bespoke progress logic
// keyed on its ID.
type Achievement struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Badge        string                  `json:"badge"`
	Type         string                  `json:"type"` // individual | team
	Category     string                  `json:"category"`
	Requirements AchievementRequirements `json:"requirements"`
}

// UserAchievement is derived, never persisted: progress is recomputed
// from the session log on every evaluation. CompletedAt therefore does
// not survive across calls; it reflects the evaluation that observed
// the completion.
type UserAchievement struct {
	UserID        uuid.UUID  `json:"user_id"`
	AchievementID string     `json:"achievement_id"`
	Progress      int        `json:"progress"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
