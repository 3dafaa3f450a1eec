package utils

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date (YYYY-MM-DD) as a local date.
// Parsing in the local location keeps the date stable across time zones;
// treating it as a UTC instant would shift it by a day west of Greenwich.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
