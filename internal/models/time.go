package models

import "time"

// TimeLayout is the layout creation dates are persisted with.
const TimeLayout = "2006-01-02T15:04:05"

// Now returns the current UTC time truncated to the persisted precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Normalize converts t to UTC at the persisted precision.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// FormatTime renders t in TimeLayout (UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a value produced by FormatTime.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}
