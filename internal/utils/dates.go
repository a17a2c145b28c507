package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return d, nil
}

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// WeekBounds returns the Monday and Sunday of the week containing anchor.
func WeekBounds(anchor time.Time) (time.Time, time.Time) {
	offset := int(anchor.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	start := anchor.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthBounds returns the first and last day of the month containing anchor.
func MonthBounds(anchor time.Time) (time.Time, time.Time) {
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}
