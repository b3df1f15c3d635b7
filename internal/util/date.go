package util

import "time"

// Date-only helpers. Every value is midnight UTC so that writes to Postgres DATE
// columns never drift a day when the process runs in a non-UTC timezone.

// YMDLayout is the layout used for date-only strings in API payloads and task meta
const YMDLayout = "2006-01-02"

// Date returns midnight UTC for the given calendar date.
// Out-of-range days are normalized by time.Date (day 0 is the last day of the previous month).
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns day 1 of t's month
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return Date(t.Year(), int(t.Month()), 1)
}

// EndOfMonth returns the last calendar day of t's month
func EndOfMonth(t time.Time) time.Time {
	t = t.UTC()
	// Day 0 of next month is the last day of this one
	return Date(t.Year(), int(t.Month())+1, 0)
}

// AddMonths adds n months to t (n may be negative), clamping the day to the length
// of the target month so Jan 31 + 1 month is Feb 28/29 rather than early March.
func AddMonths(t time.Time, n int) time.Time {
	t = t.UTC()
	target := Date(t.Year(), int(t.Month())+n, 1)
	lastDay := EndOfMonth(target).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}

	return Date(target.Year(), int(target.Month()), day)
}

// IsWeekend reports whether t falls on Saturday or Sunday (UTC)
func IsWeekend(t time.Time) bool {
	switch t.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// ShiftWeekendToNextWeekday moves a weekend date forward to the following Monday.
// Holidays are not considered.
func ShiftWeekendToNextWeekday(t time.Time) time.Time {
	d := t.UTC()
	for IsWeekend(d) {
		d = Date(d.Year(), int(d.Month()), d.Day()+1)
	}
	return d
}

// MonthStarts returns the first day of every month from the month containing
// from to the month containing to, inclusive and ascending.
func MonthStarts(from, to time.Time) []time.Time {
	var months []time.Time
	end := StartOfMonth(to)
	for cur := StartOfMonth(from); !cur.After(end); cur = AddMonths(cur, 1) {
		months = append(months, cur)
	}
	return months
}

// StartOfDay returns the UTC calendar day containing t
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return Date(t.Year(), int(t.Month()), t.Day())
}

// FormatYMD formats a date as YYYY-MM-DD
func FormatYMD(t time.Time) string {
	return t.UTC().Format(YMDLayout)
}
