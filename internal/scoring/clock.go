package scoring

import "time"

// startOfDay truncates t to local midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns Sunday 00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// startOfMonth returns the first of the month containing t.
func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// dayKey is a calendar-date bucket key in t's location.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// daysBetween is the whole-day difference between two timestamps,
// matching a floor of the raw duration (not calendar days).
func daysBetween(later, earlier time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
