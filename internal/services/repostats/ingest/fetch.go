// Package ingest holds adapter shims for the repostats ports.
package ingest

import (
	"context"
	"io"
	"time"

	"ghstats/internal/adapters/ingest/gharchive"
	"ghstats/internal/services/repostats/domain"
)

// FetchOptions configures the archive fetcher
type FetchOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// fetcher implements domain.Fetcher over the plain HTTP archive fetcher
type fetcher struct {
	f gharchive.Fetcher
}

// NewFetcher constructs a domain.Fetcher. Every call goes to the network, nothing is cached
func NewFetcher(o FetchOptions) domain.Fetcher {
	return &fetcher{f: gharchive.NewHTTPFetcher(o.BaseURL, o.Timeout, o.UserAgent)}
}

func (f *fetcher) Fetch(ctx context.Context, hr domain.HourRef) (io.ReadCloser, error) {
	return f.f.Fetch(ctx, hr)
}
