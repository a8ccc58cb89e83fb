package utils

import (
	"fmt"
	"time"
)

// Wire formats: dates travel as YYYY-MM-DD, times of day as HH:MM.
// Both are stored in their canonical string form, which keeps lexicographic
// ordering and range comparison correct.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseError reports a date or time value that does not match its wire
// format. Handlers map it to a 400.
type ParseError struct {
	Value string
	Want  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value %q, expected %s", e.Value, e.Want)
}

// ParseDate validates an ISO calendar date and returns its canonical form.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", &ParseError{Value: s, Want: "YYYY-MM-DD"}
	}
	return t.Format(DateLayout), nil
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS and normalizes to HH:MM.
// Malformed input is an error, never a silent null.
func ParseTimeOfDay(s string) (string, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t.Format(TimeLayout), nil
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format(TimeLayout), nil
	}
	return "", &ParseError{Value: s, Want: "HH:MM"}
}

// ParseOptionalTimeOfDay maps the empty string to nil and validates the rest.
func ParseOptionalTimeOfDay(s string) (*string, error) {
	if s == "" {
		return nil, nil
	}
	normalized, err := ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}

// ValidTimeRange reports whether start precedes or equals end. A missing
// endpoint is always valid. Canonical HH:MM strings compare correctly.
func ValidTimeRange(start, end *string) bool {
	if start == nil || end == nil {
		return true
	}
	return *start <= *end
}

// FormatTimeRange renders a schedule fragment for notification messages:
// "from 09:00 to 10:30", "at 09:00", or "" when no times are set.
func FormatTimeRange(start, end *string) string {
	switch {
	case start != nil && end != nil:
		return fmt.Sprintf("from %s to %s", *start, *end)
	case start != nil:
		return fmt.Sprintf("at %s", *start)
	default:
		return ""
	}
}
