// Package time contains time related helpers
package time

import (
	"fmt"
	"strings"
	"time"
)

// layouts accepted by ParseInstant, tried in order.
// Layouts without a zone are read as UTC
var layouts = []string{
	time.RFC3339Nano,
	"2006/01/02 15:04:05 -0700", // legacy archive pushed_at
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
}

// ParseInstant parses the instant formats seen on the command line and in archive records
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a time", s)
}

// Yesterday returns the instant one day before now
func Yesterday(now time.Time) time.Time { return now.Add(-24 * time.Hour) }

// ClampBefore caps t at Yesterday(now); the current day's archives may not exist yet
func ClampBefore(t, now time.Time) time.Time {
	if y := Yesterday(now); t.After(y) {
		return y
	}
	return t
}
