package services

import "time"

// NextDueDate returns the earliest date on or after today whose day-of-month
// equals dueDay, formatted as YYYY-MM-DD. Months that do not contain the day
// are skipped, so dueDay=31 asked in April resolves to May 31.
func NextDueDate(dueDay int, today time.Time) string {
	year, month, day := today.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, today.Location())

	for i := 0; i < 12; i++ {
		candidate := time.Date(year, month+time.Month(i), dueDay, 0, 0, 0, 0, today.Location())
		if candidate.Day() != dueDay {
			// time.Date normalized an overflow: this month is too short
			continue
		}
		if candidate.Before(start) {
			continue
		}
		return candidate.Format("2006-01-02")
	}
	// Unreachable for dueDay in 1..31: every 12-month window contains at
	// least one month with 31 days.
	return ""
}

// ValidDueDay reports whether d is a usable day-of-month.
func ValidDueDay(d int) bool {
	return d >= 1 && d <= 31
}
