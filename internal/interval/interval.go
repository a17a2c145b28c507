// Package interval models half-open clock-time intervals [start, end)
// within a single calendar day. Times are zero-padded "HH:MM" strings,
// which order lexicographically, so comparisons need no parsing.
package interval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidClock     = errors.New("invalid clock time")
	ErrEndNotAfterStart = errors.New("interval end must be after start")
)

// Span is a half-open interval [Start, End) on one day.
type Span struct {
	Start string
	End   string
}

// New validates both endpoints and requires start < end.
func New(start, end string) (Span, error) {
	for _, v := range []string{start, end} {
		if _, err := Minutes(v); err != nil {
			return Span{}, err
		}
	}
	if start >= end {
		return Span{}, fmt.Errorf("%w: %s >= %s", ErrEndNotAfterStart, start, end)
	}
	return Span{Start: start, End: end}, nil
}

// Overlaps reports whether a and b share at least one instant.
// Half-open semantics: touching endpoints do not overlap.
func Overlaps(a, b Span) bool {
	return a.Start < b.End && a.End > b.Start
}

// Duration returns the span length in minutes.
func (s Span) Duration() int {
	start, err1 := Minutes(s.Start)
	end, err2 := Minutes(s.End)
	if err1 != nil || err2 != nil {
		return 0
	}
	return end - start
}

// Minutes converts an "HH:MM" clock string to minutes since midnight.
func Minutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return h*60 + m, nil
}
