package catalog

import "reconnect-backend/internal/models"

// Achievement IDs. The evaluator dispatches on these; adding a catalog
// entry without a matching case yields zero progress.
const (
	AchievementWeeklyResetStreak = "weekly-reset-streak"
	AchievementMorningFocus      = "morning-focus-challenge"
	AchievementStressResetSprint = "stress-reset-sprint"
	AchievementTeamChallenge     = "team-challenge"
)

var Achievements = []models.Achievement{
	{
		ID:          AchievementWeeklyResetStreak,
		Title:       "Weekly Reset Streak",
		Description: "Complete at least 3 resets per week",
		Badge:       "Calm Consistency",
		Type:        "individual",
		Category:    "streak",
		Requirements: models.AchievementRequirements{
			Count:     3,
			Timeframe: models.TimeframeWeekly,
		},
	},
	{
		ID:          AchievementMorningFocus,
		Title:       "Morning Focus Challenge",
		Description: "Use a Focus protocol 3 mornings in a row",
		Badge:       "Sharp Starter",
		Type:        "individual",
		Category:    "focus",
		Requirements: models.AchievementRequirements{
			Count:        3,
			Timeframe:    models.TimeframeDaily,
			ProtocolType: models.CategoryFocus,
			Consecutive:  true,
		},
	},
	{
		ID:          AchievementStressResetSprint,
		Title:       "Stress Reset Sprint",
		Description: "Do a Calm protocol twice in the same week after stressful situations",
		Badge:       "Stress Slayer",
		Type:        "individual",
		Category:    "stress",
		Requirements: models.AchievementRequirements{
			Count:        2,
			Timeframe:    models.TimeframeWeekly,
			ProtocolType: models.CategoryCalm,
		},
	},
	{
		ID:          AchievementTeamChallenge,
		Title:       "Team Challenge",
		Description: "Collective goal: 50 resets completed by the team in 1 month",
		Badge:       "Team Recharge Award",
		Type:        "team",
		Category:    "team",
		Requirements: models.AchievementRequirements{
			Count:     50,
			Timeframe: models.TimeframeMonthly,
		},
	},
}
