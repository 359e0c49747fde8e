package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"reconnect-backend/internal/models"
	"reconnect-backend/internal/scoring"
)

// UserRollup is the admin view of one user: composite score, session
// counts and presentation badges derived from them.
type UserRollup struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	IsActive     bool       `json:"is_active"`
	Score        int        `json:"score"`
	SessionCount int        `json:"session_count"`
	Badges       []string   `json:"badges"`
	LastActive   *time.Time `json:"last_active"`
}

// CompanyRollup groups users by email domain.
type CompanyRollup struct {
	Name                   string  `json:"name"`
	UserCount              int     `json:"user_count"`
	ActiveUsers            int     `json:"active_users"`
	TotalSessions          int     `json:"total_sessions"`
	AverageScore           int     `json:"average_score"`
	WeeklyActiveUsers      int     `json:"weekly_active_users"`
	MonthlyActiveUsers     int     `json:"monthly_active_users"`
	AverageCalm            float64 `json:"average_calm"`
	AverageClarity         float64 `json:"average_clarity"`
	AverageEnergy          float64 `json:"average_energy"`
	AverageSessionsPerUser float64 `json:"average_sessions_per_user"`
}

type DayActivity struct {
	Label    string `json:"label"`
	Count    int    `json:"count"`
	AvgScore int    `json:"avg_score"`
}

type DayEvolution struct {
	Label   string  `json:"label"`
	Calm    float64 `json:"calm"`
	Clarity float64 `json:"clarity"`
	Energy  float64 `json:"energy"`
	Score   int     `json:"score"`
}

type ScoreBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type TimeOfDay struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
}

type CategoryUsage struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Count   int    `json:"count"`
}

type LeaderboardEntry struct {
	Company       string `json:"company"`
	TotalSessions int    `json:"total_sessions"`
}

type CompanyEvolution struct {
	Company     string `json:"company"`
	Evolution7  []int  `json:"evolution7"`
	Evolution30 []int  `json:"evolution30"`
}

// Metrics is the global (cross-company) rollup.
type Metrics struct {
	ActivePercentage      int                `json:"active_percentage"`
	TotalResets           int                `json:"total_resets"`
	AverageDelta          float64            `json:"average_delta"`
	AverageScore          int                `json:"average_score"`
	Activity7             []DayActivity      `json:"activity7"`
	Activity30            []DayActivity      `json:"activity30"`
	ScoreDistribution     []ScoreBucket      `json:"score_distribution"`
	TimeOfDay             TimeOfDay          `json:"time_of_day"`
	CategoryUsage         []CategoryUsage    `json:"category_usage"`
	Evolution7            []DayEvolution     `json:"evolution7"`
	Evolution30           []DayEvolution     `json:"evolution30"`
	Leaderboard           []LeaderboardEntry `json:"leaderboard"`
	CompanyScoreEvolution []CompanyEvolution `json:"company_score_evolution"`
}

// Report is everything the admin dashboard renders in one pass.
type Report struct {
	Users     []UserRollup    `json:"users"`
	Companies []CompanyRollup `json:"companies"`
	Metrics   Metrics         `json:"metrics"`
}

// Aggregate computes the full admin report from a corpus snapshot. Pure
// and allocation-only: repository failures are the caller's problem
// (an empty corpus yields a zeroed report). Session-level scores reuse
// the per-session quality math from the scoring package so admin
// numbers stay consistent with what each user sees.
func Aggregate(users []models.User, sessions []models.Session, protocols []models.Protocol, now time.Time) *Report {
	report := &Report{}

	byUser := make(map[uuid.UUID][]models.Session)
	for _, s := range sessions {
		byUser[s.UserID] = append(byUser[s.UserID], s)
	}

	scoreByUser := make(map[uuid.UUID]int, len(users))
	for _, u := range users {
		userSessions := byUser[u.ID]
		wellness := scoring.ComputeWellness(userSessions, now)
		score := wellness.ReconnectScore
		scoreByUser[u.ID] = score

		completedCount := 0
		var lastActive *time.Time
		for i := range userSessions {
			if userSessions[i].Completed {
				completedCount++
			}
			if lastActive == nil || userSessions[i].CreatedAt.After(*lastActive) {
				t := userSessions[i].CreatedAt
				lastActive = &t
			}
		}

		var badges []string
		if completedCount >= 10 {
			badges = append(badges, "Dedicated User")
		}
		if score >= 80 {
			badges = append(badges, "High Performer")
		}
		if len(userSessions) >= 20 {
			badges = append(badges, "Wellness Champion")
		}
		if completedCount >= 5 {
			badges = append(badges, "Active Member")
		}

		report.Users = append(report.Users, UserRollup{
			ID:           u.ID,
			Email:        u.Email,
			FullName:     u.FullName,
			IsActive:     u.IsActive,
			Score:        score,
			SessionCount: completedCount,
			Badges:       badges,
			LastActive:   lastActive,
		})
	}

	report.Companies = buildCompanies(report.Users, sessions, scoreByUser, now)
	report.Metrics = buildMetrics(report.Users, report.Companies, sessions, protocols, scoreByUser, now)
	return report
}

func emailDomain(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return email
}

// buildCompanies groups user rollups by email domain, preserving
// first-seen order. That order is the documented tie-break for the
// leaderboard, so it must stay stable.
func buildCompanies(users []UserRollup, sessions []models.Session, scoreByUser map[uuid.UUID]int, now time.Time) []CompanyRollup {
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	var companies []CompanyRollup
	index := make(map[string]int)
	members := make(map[string][]UserRollup)

	for _, u := range users {
		domain := emailDomain(u.Email)
		if _, ok := index[domain]; !ok {
			index[domain] = len(companies)
			companies = append(companies, CompanyRollup{Name: domain})
		}
		c := &companies[index[domain]]
		c.UserCount++
		if u.SessionCount > 0 {
			c.ActiveUsers++
		}
		c.TotalSessions += u.SessionCount
		members[domain] = append(members[domain], u)
	}

	for i := range companies {
		c := &companies[i]
		companyUsers := members[c.Name]

		userIDs := make(map[uuid.UUID]bool, len(companyUsers))
		scoreSum := 0
		for _, u := range companyUsers {
			userIDs[u.ID] = true
			if u.SessionCount > 0 {
				scoreSum += scoreByUser[u.ID]
			}
		}
		if c.ActiveUsers > 0 {
			c.AverageScore = int(math.Round(float64(scoreSum) / float64(c.ActiveUsers)))
		}

		weeklyActive := make(map[uuid.UUID]bool)
		monthlyActive := make(map[uuid.UUID]bool)
		var calmSum, claritySum, energySum, rated int
		for _, s := range sessions {
			if !userIDs[s.UserID] || !s.Completed {
				continue
			}
			if !s.CreatedAt.Before(weekAgo) {
				weeklyActive[s.UserID] = true
			}
			if !s.CreatedAt.Before(monthAgo) {
				monthlyActive[s.UserID] = true
			}
			if s.HasPostRatings() {
				calmSum += *s.PostCalm
				claritySum += *s.PostClarity
				energySum += *s.PostEnergy
				rated++
			}
		}
		c.WeeklyActiveUsers = len(weeklyActive)
		c.MonthlyActiveUsers = len(monthlyActive)
		if rated > 0 {
			c.AverageCalm = round1(float64(calmSum) / float64(rated))
			c.AverageClarity = round1(float64(claritySum) / float64(rated))
			c.AverageEnergy = round1(float64(energySum) / float64(rated))
		}
		if c.UserCount > 0 {
			c.AverageSessionsPerUser = round1(float64(c.TotalSessions) / float64(c.UserCount))
		}
	}

	return companies
}

func buildMetrics(users []UserRollup, companies []CompanyRollup, sessions []models.Session, protocols []models.Protocol, scoreByUser map[uuid.UUID]int, now time.Time) Metrics {
	var m Metrics

	totalUsers := len(users)
	activeUsers := 0
	scoreSum := 0
	for _, u := range users {
		if u.SessionCount > 0 {
			activeUsers++
		}
		scoreSum += u.Score
	}
	if totalUsers > 0 {
		m.ActivePercentage = int(math.Round(float64(activeUsers) / float64(totalUsers) * 100))
		m.AverageScore = int(math.Round(float64(scoreSum) / float64(totalUsers)))
	}

	var completed, scored []models.Session
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		completed = append(completed, s)
		if s.HasPostRatings() {
			scored = append(scored, s)
		}
	}
	m.TotalResets = len(completed)

	if len(scored) > 0 {
		var deltaSum float64
		for _, s := range scored {
			deltaSum += float64((*s.PostCalm-s.PreCalm)+(*s.PostClarity-s.PreClarity)+(*s.PostEnergy-s.PreEnergy)) / 3
		}
		m.AverageDelta = round1(deltaSum / float64(len(scored)))
	}

	m.Activity7 = buildActivity(completed, 7, now)
	m.Activity30 = buildActivity(completed, 30, now)

	m.ScoreDistribution = []ScoreBucket{
		{Range: "0-20"}, {Range: "21-40"}, {Range: "41-60"}, {Range: "61-80"}, {Range: "81-100"},
	}
	for _, s := range scored {
		q := scoring.QualityForSession(s)
		switch {
		case q <= 20:
			m.ScoreDistribution[0].Count++
		case q <= 40:
			m.ScoreDistribution[1].Count++
		case q <= 60:
			m.ScoreDistribution[2].Count++
		case q <= 80:
			m.ScoreDistribution[3].Count++
		default:
			m.ScoreDistribution[4].Count++
		}
	}

	for _, s := range completed {
		h := s.CreatedAt.In(now.Location()).Hour()
		switch {
		case h >= 5 && h <= 11:
			m.TimeOfDay.Morning++
		case h >= 12 && h <= 17:
			m.TimeOfDay.Afternoon++
		default:
			m.TimeOfDay.Evening++
		}
	}

	m.CategoryUsage = buildCategoryUsage(completed, protocols)
	m.Evolution7 = buildEvolution(scored, 7, now)
	m.Evolution30 = buildEvolution(scored, 30, now)

	// Leaderboard: stable sort keeps first-seen company order on ties.
	for _, c := range companies {
		m.Leaderboard = append(m.Leaderboard, LeaderboardEntry{Company: c.Name, TotalSessions: c.TotalSessions})
	}
	sort.SliceStable(m.Leaderboard, func(i, j int) bool {
		return m.Leaderboard[i].TotalSessions > m.Leaderboard[j].TotalSessions
	})
	if len(m.Leaderboard) > 10 {
		m.Leaderboard = m.Leaderboard[:10]
	}

	userDomain := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		userDomain[u.ID] = emailDomain(u.Email)
	}
	for _, c := range companies {
		var companyScored []models.Session
		for _, s := range scored {
			if userDomain[s.UserID] == c.Name {
				companyScored = append(companyScored, s)
			}
		}
		m.CompanyScoreEvolution = append(m.CompanyScoreEvolution, CompanyEvolution{
			Company:     c.Name,
			Evolution7:  scoreSeries(companyScored, 7, now),
			Evolution30: scoreSeries(companyScored, 30, now),
		})
	}

	return m
}

// dayLabel renders a weekday abbreviation for 7-day series and a
// month-day label for longer ones.
func dayLabel(day time.Time, days int) string {
	if days == 7 {
		return day.Format("Mon")
	}
	return day.Format("01-02")
}

func buildActivity(completed []models.Session, days int, now time.Time) []DayActivity {
	series := make([]DayActivity, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := startOfDay(day)
		dayEnd := dayStart.AddDate(0, 0, 1)

		count := 0
		qualitySum := 0
		for _, s := range completed {
			if s.CreatedAt.Before(dayStart) || !s.CreatedAt.Before(dayEnd) {
				continue
			}
			count++
			if s.HasPostRatings() {
				qualitySum += scoring.QualityForSession(s)
			}
		}
		entry := DayActivity{Label: dayLabel(day, days), Count: count}
		if count > 0 {
			entry.AvgScore = int(math.Round(float64(qualitySum) / float64(count)))
		}
		series = append(series, entry)
	}
	return series
}

func buildEvolution(scored []models.Session, days int, now time.Time) []DayEvolution {
	series := make([]DayEvolution, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := startOfDay(day)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var calm, clarity, energy, quality, count int
		for _, s := range scored {
			if s.CreatedAt.Before(dayStart) || !s.CreatedAt.Before(dayEnd) {
				continue
			}
			count++
			calm += *s.PostCalm
			clarity += *s.PostClarity
			energy += *s.PostEnergy
			quality += scoring.QualityForSession(s)
		}
		entry := DayEvolution{Label: dayLabel(day, days)}
		if count > 0 {
			n := float64(count)
			entry.Calm = round1(float64(calm) / n)
			entry.Clarity = round1(float64(clarity) / n)
			entry.Energy = round1(float64(energy) / n)
			entry.Score = int(math.Round(float64(quality) / n))
		}
		series = append(series, entry)
	}
	return series
}

func scoreSeries(scored []models.Session, days int, now time.Time) []int {
	series := make([]int, 0, days)
	for i := days - 1; i >= 0; i-- {
		dayStart := startOfDay(now.AddDate(0, 0, -i))
		dayEnd := dayStart.AddDate(0, 0, 1)

		qualitySum, count := 0, 0
		for _, s := range scored {
			if s.CreatedAt.Before(dayStart) || !s.CreatedAt.Before(dayEnd) {
				continue
			}
			qualitySum += scoring.QualityForSession(s)
			count++
		}
		score := 0
		if count > 0 {
			score = int(math.Round(float64(qualitySum) / float64(count)))
		}
		series = append(series, score)
	}
	return series
}

func buildCategoryUsage(completed []models.Session, protocols []models.Protocol) []CategoryUsage {
	categoryOf := make(map[string]string, len(protocols))
	for _, p := range protocols {
		categoryOf[p.ID] = p.Category
	}

	counts := map[string]int{}
	for _, s := range completed {
		if cat, ok := categoryOf[s.ProtocolID]; ok {
			counts[cat]++
		}
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	labels := []struct{ label, category string }{
		{"Quick Reset", models.CategoryReset},
		{"Deep Focus", models.CategoryFocus},
		{"Energy Boost", models.CategoryEnergy},
		{"Stress Relief", models.CategoryCalm},
	}
	usage := make([]CategoryUsage, 0, len(labels))
	for _, l := range labels {
		entry := CategoryUsage{Label: l.label, Count: counts[l.category]}
		if total > 0 {
			entry.Percent = int(math.Round(float64(entry.Count) / float64(total) * 100))
		}
		usage = append(usage, entry)
	}
	return usage
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
