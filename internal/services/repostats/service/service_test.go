package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	perr "ghstats/internal/platform/errors"
	kit "ghstats/internal/platform/testkit"
	"ghstats/internal/services/repostats/domain"
	"ghstats/internal/services/repostats/ingest"
	"ghstats/internal/services/repostats/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves archives from memory; hours without an entry get an empty archive
type fakeFetcher struct {
	t       *testing.T
	hours   map[string][]byte
	missing map[string]bool
	calls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, hr domain.HourRef) (io.ReadCloser, error) {
	f.calls = append(f.calls, hr.String())
	if f.missing[hr.String()] {
		return nil, perr.Fetchf("unexpected status 404 for %s", hr.String())
	}
	b, ok := f.hours[hr.String()]
	if !ok {
		b = kit.Gzip(f.t, nil)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func pushEvent(url, pushedAt string) map[string]any {
	return map[string]any{
		"type":       "PushEvent",
		"repository": map[string]any{"url": url, "pushed_at": pushedAt},
	}
}

func day(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func baseConfig() domain.RunConfig {
	return domain.RunConfig{
		After:       day(2023, 1, 1),
		Before:      day(2023, 1, 3),
		EventName:   "PushEvent",
		Count:       10,
		Granularity: "hourly",
	}
}

func TestRun_EndToEnd(t *testing.T) {
	ab := pushEvent("https://github.com/a/b", "2023-01-02T00:00:00Z")
	ac := pushEvent("https://github.com/a/c", "2023-01-02T00:00:00Z")
	f := &fakeFetcher{t: t, hours: map[string][]byte{
		"2023-01-01-5":  kit.GzipJSON(t, ab, ab),
		"2023-01-02-17": kit.GzipJSON(t, ac, ab),
	}}
	svc := New(f, ingest.NewReaderFactory())

	rows, err := svc.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, render.Lines(&out, rows))
	assert.Equal(t, "a/b: 3 events\na/c: 1 events\n", out.String())

	// every hour of the window, in order, once
	require.Len(t, f.calls, 49)
	assert.Equal(t, "2023-01-01-0", f.calls[0])
	assert.Equal(t, "2023-01-03-0", f.calls[48])
}

func TestRun_OtherEventShapesDoNotAbort(t *testing.T) {
	f := &fakeFetcher{t: t, hours: map[string][]byte{
		"2023-01-01-0": kit.GzipJSON(t,
			map[string]any{"type": "GistEvent", "repository": "x"},
			map[string]any{"type": "WatchEvent", "repository": map[string]any{"url": 42, "pushed_at": []int{1}}},
			map[string]any{"TYPE": "PushEvent", "Repository": map[string]any{"URL": "https://github.com/x/y", "Pushed_At": "2023-01-02T00:00:00Z"}},
			pushEvent("https://github.com/a/b", "2023-01-02T00:00:00Z"),
		),
	}}
	rows, err := New(f, ingest.NewReaderFactory()).Run(context.Background(), baseConfig())
	require.NoError(t, err)
	assert.Equal(t, []domain.RankedRepo{{Key: "a/b", Count: 1}}, rows)
}

func TestRun_DailyGranularityVisitsOneHourPerDay(t *testing.T) {
	f := &fakeFetcher{t: t}
	cfg := baseConfig()
	cfg.Granularity = "daily"
	cfg.After = time.Date(2023, 1, 1, 6, 0, 0, 0, time.UTC)

	rows, err := New(f, ingest.NewReaderFactory()).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, []string{"2023-01-01-6", "2023-01-02-6"}, f.calls)
}

func TestRun_ConfigErrorBeforeAnyFetch(t *testing.T) {
	f := &fakeFetcher{t: t}
	cfg := baseConfig()
	cfg.After, cfg.Before = cfg.Before, cfg.After

	rows, err := New(f, ingest.NewReaderFactory()).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConfig))
	assert.Equal(t, "Begin Date is after the End Date", err.Error())
	assert.Empty(t, f.calls)
}

func TestRun_NonPositiveCountBeforeAnyFetch(t *testing.T) {
	f := &fakeFetcher{t: t}
	cfg := baseConfig()
	cfg.Count = 0

	_, err := New(f, ingest.NewReaderFactory()).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, "Count must be a positive number", err.Error())
	assert.Empty(t, f.calls)
}

func TestRun_FetchFailureAbortsWithoutPartialResult(t *testing.T) {
	ab := pushEvent("https://github.com/a/b", "2023-01-02T00:00:00Z")
	f := &fakeFetcher{
		t:       t,
		hours:   map[string][]byte{"2023-01-01-0": kit.GzipJSON(t, ab)},
		missing: map[string]bool{"2023-01-01-2": true},
	}

	rows, err := New(f, ingest.NewReaderFactory()).Run(context.Background(), baseConfig())
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeFetch))
	e, _ := perr.As(err)
	assert.Equal(t, "repostats.run", e.Op())
	// no fetch after the failing hour
	assert.Equal(t, []string{"2023-01-01-0", "2023-01-01-1", "2023-01-01-2"}, f.calls)
}

func TestRun_ParseFailureAborts(t *testing.T) {
	f := &fakeFetcher{t: t, hours: map[string][]byte{
		"2023-01-01-0": kit.Gzip(t, []byte(`{"type":"PushEvent"} {not json}`)),
	}}
	_, err := New(f, ingest.NewReaderFactory()).Run(context.Background(), baseConfig())
	assert.True(t, perr.IsCode(err, perr.ErrorCodeParse), "got %v", err)
	assert.Len(t, f.calls, 1)
}

func TestRun_BadPushedAtAborts(t *testing.T) {
	f := &fakeFetcher{t: t, hours: map[string][]byte{
		"2023-01-01-0": kit.GzipJSON(t, pushEvent("https://github.com/a/b", "last tuesday")),
	}}
	_, err := New(f, ingest.NewReaderFactory()).Run(context.Background(), baseConfig())
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeParse), "got %v", err)
	e, _ := perr.As(err)
	assert.Equal(t, "repository.pushed_at", e.Field())
}

func TestRun_DecompressFailureAborts(t *testing.T) {
	f := &fakeFetcher{t: t, hours: map[string][]byte{
		"2023-01-01-0": []byte("<html>not an archive</html>"),
	}}
	_, err := New(f, ingest.NewReaderFactory()).Run(context.Background(), baseConfig())
	assert.True(t, perr.IsCode(err, perr.ErrorCodeDecompress), "got %v", err)
}

func TestRun_CanceledContext(t *testing.T) {
	f := &fakeFetcher{t: t}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(f, ingest.NewReaderFactory()).Run(ctx, baseConfig())
	assert.True(t, perr.IsCode(err, perr.ErrorCodeCanceled), "got %v", err)
	assert.Empty(t, f.calls)
}

func TestNew_RequiresPorts(t *testing.T) {
	kit.MustPanic(t, func() { New(nil, ingest.NewReaderFactory()) })
	kit.MustPanic(t, func() { New(&fakeFetcher{t: t}, nil) })
}
