// Package service runs the ranking pipeline: expand the window into archive
// hours, then fetch, decode, filter and count each hour in turn
package service

import (
	"context"
	"io"
	"time"

	"ghstats/internal/adapters/ingest/gharchive"
	perr "ghstats/internal/platform/errors"
	"ghstats/internal/platform/logger"
	"ghstats/internal/services/repostats/domain"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Service implements domain.RunnerPort
type Service struct {
	Fetch  domain.Fetcher
	Reader domain.ReaderFactory
}

// New constructs the ranking service
func New(f domain.Fetcher, rf domain.ReaderFactory) *Service {
	if f == nil {
		panic("repostats.Service requires a non nil Fetcher")
	}
	if rf == nil {
		panic("repostats.Service requires a non nil ReaderFactory")
	}
	return &Service{Fetch: f, Reader: rf}
}

// Run validates cfg and processes every hour of the window strictly in order.
// The first failure aborts the run and no partial ranking is returned
func (s *Service) Run(ctx context.Context, cfg domain.RunConfig) ([]domain.RankedRepo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger.RunID(ctx) == "" {
		ctx = logger.WithRun(ctx, uuid.NewString())
	}
	log := logger.C(ctx)

	hours := gharchive.Expand(cfg.After, cfg.Before, cfg.Granularity)
	log.Info().
		Time("after", cfg.After).
		Time("before", cfg.Before).
		Str("event", cfg.EventName).
		Str("granularity", string(cfg.Granularity)).
		Int("hours", len(hours)).
		Msg("repostats: run planned")

	started := time.Now()
	agg := NewAggregate()
	var records int
	var bytes int64
	for i, hr := range hours {
		st, err := s.runHour(ctx, hr, cfg, agg)
		if err != nil {
			log.Error().
				Err(err).
				Str("hour", hr.String()).
				Str("kind", perr.CodeOf(err).String()).
				Int("done", i).
				Int("hours", len(hours)).
				Msg("repostats: run aborted")
			return nil, perr.WithOp(err, "repostats.run")
		}
		records += st.Records
		bytes += st.Bytes
	}

	ranked := Select(agg, cfg.Count)
	log.Info().
		Int("hours", len(hours)).
		Str("records", humanize.Comma(int64(records))).
		Str("accepted", humanize.Comma(int64(agg.Total()))).
		Int("repos", agg.Len()).
		Str("uncompressed", humanize.Bytes(uint64(bytes))).
		Dur("elapsed", time.Since(started)).
		Msg("repostats: run complete")
	return ranked, nil
}

// runHour fetches one hour and feeds every accepted record into agg
func (s *Service) runHour(ctx context.Context, hr domain.HourRef, cfg domain.RunConfig, agg *Aggregate) (st domain.HourStats, retErr error) {
	st.Hour = hr
	started := time.Now()
	log := logger.C(ctx).With().Str("hour", hr.String()).Logger()

	if err := ctx.Err(); err != nil {
		return st, perr.Wrap(err, perr.ErrorCodeCanceled, "repostats: run interrupted")
	}

	log.Info().Msg("fetching archive")
	rc, err := s.Fetch.Fetch(ctx, hr)
	if err != nil {
		return st, err
	}
	rd, err := s.Reader.New(rc)
	if err != nil {
		return st, err
	}
	defer func() {
		if cerr := rd.Close(); cerr != nil && retErr == nil {
			log.Warn().Err(cerr).Msg("repostats: closing archive reader")
		}
	}()

	w := cfg.Window()
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, err
		}
		ev, ok, err := Accept(rec, w, cfg.EventName)
		if err != nil {
			return st, err
		}
		if !ok {
			continue
		}
		agg.Increment(ev.RepoKey)
		st.Accepted++
	}

	st.Records, st.Bytes = rd.Stats()
	if wb, ok := rd.(interface{ WireBytes() int64 }); ok {
		st.WireBytes = wb.WireBytes()
	}
	st.Elapsed = time.Since(started)

	log.Debug().
		Int("records", st.Records).
		Int("accepted", st.Accepted).
		Str("uncompressed", humanize.Bytes(uint64(st.Bytes))).
		Str("compressed", humanize.Bytes(uint64(st.WireBytes))).
		Dur("elapsed", st.Elapsed).
		Msg("archive done")
	return st, nil
}
