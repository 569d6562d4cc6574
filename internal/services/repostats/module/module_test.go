package module

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"ghstats/internal/adapters/ingest/gharchive"
	"ghstats/internal/modkit"
	mod "ghstats/internal/modkit/module"
	"ghstats/internal/platform/config"
	kit "ghstats/internal/platform/testkit"
	"ghstats/internal/services/repostats/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	t     *testing.T
	calls int
}

func (f *countingFetcher) Fetch(_ context.Context, _ domain.HourRef) (io.ReadCloser, error) {
	f.calls++
	return io.NopCloser(bytes.NewReader(kit.GzipJSON(f.t, map[string]any{
		"type":       "PushEvent",
		"repository": map[string]any{"url": "https://github.com/a/b", "pushed_at": "2023-01-01T00:30:00Z"},
	}))), nil
}

func TestFromConfig_Defaults(t *testing.T) {
	for _, k := range []string{"ARCHIVE_BASE_URL", "HTTP_TIMEOUT", "GRANULARITY", "USER_AGENT"} {
		t.Setenv("GHSTATS_"+k, "")
	}
	o := FromConfig(config.New())
	assert.Equal(t, gharchive.DefaultBaseURL, o.BaseURL)
	assert.Equal(t, gharchive.DefaultHTTPTimeout, o.HTTPTimeout)
	assert.Equal(t, gharchive.GranularityHourly, o.Granularity)
	assert.Contains(t, o.UserAgent, "ghstats/")
}

func TestFromConfig_Overrides(t *testing.T) {
	t.Setenv("GHSTATS_ARCHIVE_BASE_URL", "http://mirror.local/archive/")
	t.Setenv("GHSTATS_HTTP_TIMEOUT", "30s")
	t.Setenv("GHSTATS_GRANULARITY", "DAILY")
	t.Setenv("GHSTATS_USER_AGENT", "probe/1")

	o := FromConfig(config.New())
	assert.Equal(t, "http://mirror.local/archive", o.BaseURL)
	assert.Equal(t, 30*time.Second, o.HTTPTimeout)
	assert.Equal(t, gharchive.GranularityDaily, o.Granularity)
	assert.Equal(t, "probe/1", o.UserAgent)
}

func TestFromConfig_InvalidFallsBack(t *testing.T) {
	t.Setenv("GHSTATS_ARCHIVE_BASE_URL", "not a url")
	t.Setenv("GHSTATS_HTTP_TIMEOUT", "soon")
	t.Setenv("GHSTATS_GRANULARITY", "weekly")

	o := FromConfig(config.New())
	assert.Equal(t, gharchive.DefaultBaseURL, o.BaseURL)
	assert.Equal(t, gharchive.DefaultHTTPTimeout, o.HTTPTimeout)
	assert.Equal(t, gharchive.GranularityHourly, o.Granularity)
}

func TestNew_WiresRunnerWithOverride(t *testing.T) {
	f := &countingFetcher{t: t}
	m := New(modkit.Deps{Cfg: config.New()}, modkit.WithPorts[domain.Fetcher](f))
	assert.Equal(t, "repostats", m.Name())

	runner := mod.MustPortsOf[domain.RunnerPort](m)
	after := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := runner.Run(context.Background(), domain.RunConfig{
		After:       after,
		Before:      after.Add(time.Hour),
		EventName:   domain.DefaultEventName,
		Count:       5,
		Granularity: gharchive.GranularityHourly,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, []domain.RankedRepo{{Key: "a/b", Count: 2}}, rows)
}

func TestNew_CustomName(t *testing.T) {
	m := New(modkit.Deps{}, modkit.WithName("stats"), modkit.WithPorts[domain.Fetcher](&countingFetcher{t: t}))
	assert.Equal(t, "stats", m.Name())
}
