package gharchive

import (
	"fmt"
	"strings"
	"time"
)

// Granularity selects how a time window is turned into archive hours
type Granularity string

const (
	// GranularityHourly visits every archive hour in the window
	GranularityHourly Granularity = "hourly"

	// GranularityDaily visits one hour per day, the hour of the window start
	GranularityDaily Granularity = "daily"
)

// Granularities lists the accepted values, default first
var Granularities = []string{string(GranularityHourly), string(GranularityDaily)}

// ParseGranularity accepts the names in Granularities, case-insensitively
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityHourly, GranularityDaily:
		return g, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (want one of %s)", s, strings.Join(Granularities, ", "))
	}
}

// Expand returns the archive hours covering [after, before], oldest first.
// Both endpoints are included at the granularity. An inverted window yields nil
func Expand(after, before time.Time, g Granularity) []HourRef {
	if before.Before(after) {
		return nil
	}
	switch g {
	case GranularityDaily:
		return expandDaily(after, before)
	default:
		return expandHourly(after, before)
	}
}

func expandHourly(after, before time.Time) []HourRef {
	cur := after.UTC().Truncate(time.Hour)
	end := before.UTC().Truncate(time.Hour)
	out := make([]HourRef, 0, int(end.Sub(cur)/time.Hour)+1)
	for ; !cur.After(end); cur = cur.Add(time.Hour) {
		out = append(out, NewHourRef(cur))
	}
	return out
}

// expandDaily steps the untruncated start by whole days while it is not past before
func expandDaily(after, before time.Time) []HourRef {
	var out []HourRef
	for cur := after; !cur.After(before); cur = cur.Add(24 * time.Hour) {
		out = append(out, NewHourRef(cur))
	}
	return out
}
