package gharchive

import (
	"encoding/json"
	"fmt"
	"time"
)

// HourRef identifies a GH Archive hour (UTC).
type HourRef struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

// NewHourRef creates an HourRef from a time.Time, converting to UTC
func NewHourRef(t time.Time) HourRef {
	ut := t.UTC()
	return HourRef{Year: ut.Year(), Month: int(ut.Month()), Day: ut.Day(), Hour: ut.Hour()}
}

// UTC returns the start of the hour
func (h HourRef) UTC() time.Time {
	return time.Date(h.Year, time.Month(h.Month), h.Day, h.Hour, 0, 0, 0, time.UTC)
}

// String returns the string representation of the HourRef in GH Archive format
func (h HourRef) String() string {
	// Matches GH Archive naming: YYYY-MM-DD-H.json.gz (hour is not zero padded)
	return fmt.Sprintf("%04d-%02d-%02d-%d", h.Year, h.Month, h.Day, h.Hour)
}

// Record is one archive entry as decoded, with no schema applied.
// Keys match exactly; nested objects are map[string]any and numbers json.Number
type Record map[string]any

// Type returns the event type, or "" when it is absent or not a string
func (r Record) Type() string {
	s, _ := r["type"].(string)
	return s
}

// Lookup returns the value under key; null counts as absent
func (r Record) Lookup(key string) (any, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Kind names the JSON kind of a decoded value
func Kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any, Record:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
