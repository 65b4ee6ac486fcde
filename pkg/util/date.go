package util

import "time"

// DayLayout is the wire format for calendar days throughout the service.
// Lexicographic order on these strings is chronological order.
const DayLayout = "2006-01-02"

// ParseDay parses an ISO calendar day. Returns (t, true) if it parsed.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDay renders a time as an ISO calendar day in UTC.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// AddDays shifts an ISO day string by n days. Invalid input is returned
// unchanged so a bad date surfaces downstream instead of vanishing.
func AddDays(day string, n int) string {
	t, ok := ParseDay(day)
	if !ok {
		return day
	}
	return FormatDay(t.AddDate(0, 0, n))
}
