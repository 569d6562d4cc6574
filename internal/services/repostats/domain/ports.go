package domain

import (
	"context"
	"io"
)

// RunnerPort is the public port exposed by the module
type RunnerPort interface {
	Run(ctx context.Context, cfg RunConfig) ([]RankedRepo, error)
}

// Fetcher is the archive fetcher interface
type Fetcher interface {
	Fetch(ctx context.Context, hr HourRef) (io.ReadCloser, error)
}

// ReaderPort is the record reader interface
type ReaderPort interface {
	Next() (Record, error)
	Close() error
	Stats() (records int, bytes int64)
}

// ReaderFactory is the record reader factory interface
type ReaderFactory interface {
	New(io.ReadCloser) (ReaderPort, error)
}
