// Package domain holds the core types and ports for repository rankings
package domain

import (
	"sync"
	"time"

	"ghstats/internal/adapters/ingest/gharchive"
	"ghstats/internal/platform/validate"
)

// HourRef re-exports the archive address shape
type HourRef = gharchive.HourRef

// Record re-exports the decoded archive entry shape used by the filter and reader
type Record = gharchive.Record

// Granularity re-exports the address expansion policy
type Granularity = gharchive.Granularity

// Defaults applied when a run option is not given
const (
	DefaultEventName = "PushEvent"
	DefaultCount     = 20
	DefaultLookback  = 7 * 24 * time.Hour
)

// Window bounds pushed_at; both ends are inclusive
type Window struct {
	After  time.Time
	Before time.Time
}

// Contains reports whether t lies within the window, ends included
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.After) && !t.After(w.Before)
}

// RunConfig is everything one ranking run consumes
type RunConfig struct {
	After       time.Time   `flag:"after" validate:"required"`
	Before      time.Time   `flag:"before" validate:"required,run_window"`
	EventName   string      `flag:"event" validate:"required"`
	Count       int         `flag:"count" validate:"run_count"`
	Granularity Granularity `flag:"granularity" validate:"oneof=hourly daily"`
}

// Window returns the pushed_at bounds of the run
func (c RunConfig) Window() Window { return Window{After: c.After, Before: c.Before} }

var registerMessages = sync.OnceValue(func() error {
	validate.RegisterAlias("run_window", "gtefield=After")
	validate.RegisterAlias("run_count", "min=1")
	if err := validate.RegisterMessage("run_window", "Begin Date is after the End Date"); err != nil {
		return err
	}
	return validate.RegisterMessage("run_count", "Count must be a positive number")
})

// Validate rejects an inverted window or a non-positive count with the user-facing message
func (c RunConfig) Validate() error {
	if err := registerMessages(); err != nil {
		return err
	}
	return validate.Struct(c)
}

// ValidatedEvent is what survives the filter: the key the event is counted under
type ValidatedEvent struct {
	RepoKey string
}

// RankedRepo is one row of the ranking
type RankedRepo struct {
	Key   string `json:"repo"`
	Count int    `json:"events"`
}

// HourStats describes the work done on one archive hour
type HourStats struct {
	Hour      HourRef
	Records   int
	Accepted  int
	Bytes     int64
	WireBytes int64
	Elapsed   time.Duration
}
