package util

import "time"

// DaysInMonth returns the number of days in the month containing t
func DaysInMonth(t time.Time) int {
	// Day 0 of next month is the last day of this one
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysRemainingInMonth counts the days left in t's month, today included,
// so the result is never below 1
func DaysRemainingInMonth(t time.Time) int {
	return DaysInMonth(t) - t.Day() + 1
}

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// NextDueDate returns the next date, on or after now's day, on which a
// monthly obligation due on dueDay falls
func NextDueDate(now time.Time, dueDay int) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	candidate := CalculateActualDate(now.Year(), now.Month(), dueDay)
	if candidate.Before(today) {
		next := today.AddDate(0, 0, -today.Day()+1).AddDate(0, 1, 0)
		candidate = CalculateActualDate(next.Year(), next.Month(), dueDay)
	}
	return candidate
}
