package domain

import "time"

// WindowStats is the summed quantity and cost over one aggregation window.
type WindowStats struct {
	Quantity int
	Cost     float64
}

// Aggregates holds the four standard windows, all anchored to "now".
type Aggregates struct {
	Daily   WindowStats
	Weekly  WindowStats
	Monthly WindowStats
	Yearly  WindowStats
}

// DayStart returns midnight of now's calendar day, in now's location.
func DayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// WeekStart returns the rolling 7-day window start (not calendar-aligned).
func WeekStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -7)
}

// MonthStart returns midnight on the 1st of now's calendar month.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// YearStart returns midnight on January 1st of now's calendar year.
func YearStart(now time.Time) time.Time {
	return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
}

// Forecast projects spend for the rest of the year from today's cost alone:
// dailyCost per remaining calendar day, today excluded, Dec 31 included.
// Zero consumption so far today means a zero forecast even with heavy
// historical use; that same-day-rate semantic is intentional.
func Forecast(dailyCost float64, today time.Time) float64 {
	if dailyCost <= 0 {
		return 0
	}
	endOfYear := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	return dailyCost * float64(daysBetween(today, endOfYear))
}

// TheoreticalSpentSinceStart estimates total spend since startDate by
// applying today's daily cost to every day from startDate through today,
// both endpoints included. Empty, unparsable or future start dates yield 0.
func TheoreticalSpentSinceStart(dailyCost float64, startDate string, today time.Time) float64 {
	if startDate == "" {
		return 0
	}
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0
	}
	days := daysBetween(start, today)
	if days < 0 {
		return 0
	}
	return dailyCost * float64(days+1)
}

// daysBetween counts calendar days from a to b. Dates are normalized to
// UTC midnights first so DST transitions cannot skew the count.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)) / (24 * time.Hour))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
