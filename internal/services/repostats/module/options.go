package module

import (
	"time"

	"ghstats/internal/adapters/ingest/gharchive"
	"ghstats/internal/core/version"
	"ghstats/internal/platform/config"
)

// Options holds configuration options for the repostats service
type Options struct {
	BaseURL     string
	HTTPTimeout time.Duration
	Granularity gharchive.Granularity
	UserAgent   string
}

// FromConfig reads the repostats options from config with GHSTATS_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("GHSTATS_")
	return Options{
		BaseURL:     c.MayURL("ARCHIVE_BASE_URL", gharchive.DefaultBaseURL),
		HTTPTimeout: c.MayDuration("HTTP_TIMEOUT", gharchive.DefaultHTTPTimeout),
		Granularity: gharchive.Granularity(c.MayEnum("GRANULARITY", string(gharchive.GranularityHourly), gharchive.Granularities...)),
		UserAgent:   c.MayString("USER_AGENT", version.Info().UserAgent()),
	}
}
