package ingest

import (
	"io"

	"ghstats/internal/adapters/ingest/gharchive"
	"ghstats/internal/services/repostats/domain"
)

// readerFactory adapts gharchive.NewReader to the domain.ReaderFactory
type readerFactory struct{}

// NewReaderFactory returns a factory that wraps gharchive.NewReader
func NewReaderFactory() domain.ReaderFactory { return readerFactory{} }

func (readerFactory) New(rc io.ReadCloser) (domain.ReaderPort, error) {
	r, err := gharchive.NewReader(rc)
	if err != nil {
		return nil, err
	}
	return &reader{r: r}, nil
}

type reader struct {
	r *gharchive.Reader
}

// domain.Record is an alias to gharchive.Record; records pass straight through
func (r *reader) Next() (domain.Record, error) { return r.r.Next() }

func (r *reader) Close() error { return r.r.Close() }

func (r *reader) Stats() (records int, bytes int64) { return r.r.Stats() }

// WireBytes exposes compressed byte counts for per-hour logging
func (r *reader) WireBytes() int64 { return r.r.WireBytes() }
