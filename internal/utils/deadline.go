package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDeadline is returned when a deadline matches none of the accepted layouts.
var ErrInvalidDeadline = errors.New("invalid deadline")

// deadlineLayouts are tried in order. Layouts without a zone are read as UTC.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDeadline accepts a date ("2024-09-12") or a timestamp and returns the
// canonical UTC instant. A bare date means midnight UTC.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDeadline
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, value)
}
