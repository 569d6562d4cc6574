package gharchive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	perr "ghstats/internal/platform/errors"

	"github.com/klauspost/compress/gzip"
)

const (
	// DefaultBaseURL is where archive hours are served from
	DefaultBaseURL = "https://data.gharchive.org"

	// DefaultHTTPTimeout bounds one whole archive download
	DefaultHTTPTimeout = 5 * time.Minute
)

// Fetcher fetches a reader for a given hour
type Fetcher interface {
	Fetch(ctx context.Context, hour HourRef) (io.ReadCloser, error)
}

// HTTPFetcher fetches directly from the archive host
type HTTPFetcher struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

// NewHTTPFetcher creates an HTTPFetcher; empty baseURL means DefaultBaseURL
// and timeout 0 means no client timeout
func NewHTTPFetcher(baseURL string, timeout time.Duration, userAgent string) *HTTPFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
	}
}

// URL returns the location of the gzip file for the given hour
func (f *HTTPFetcher) URL(hour HourRef) string {
	return fmt.Sprintf("%s/%s.json.gz", f.BaseURL, hour.String())
}

// Fetch returns the still-compressed body for the given hour.
// Transport failures, timeouts and non-200 responses are fetch errors
func (f *HTTPFetcher) Fetch(ctx context.Context, hour HourRef) (io.ReadCloser, error) {
	url := f.URL(hour)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "gharchive: build request for %s", url)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeCanceled, "gharchive: fetch %s", url)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "gharchive: fetch %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		if closeErr := resp.Body.Close(); closeErr != nil {
			return nil, perr.Fetchf(
				"gharchive: unexpected status %d for %s; error closing body: %v",
				resp.StatusCode, url, closeErr,
			)
		}
		return nil, perr.Fetchf("gharchive: unexpected status %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// gzipBody closes both the gzip stream and the transport body under it
type gzipBody struct {
	*gzip.Reader
	body io.ReadCloser
}

func (g *gzipBody) Close() error {
	first := g.Reader.Close()
	if err := g.body.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// Decompress wraps a compressed body in a gzip reader. A bad or empty header is a
// decompress error and rc is closed; on success closing the result closes rc
func Decompress(rc io.ReadCloser) (io.ReadCloser, error) {
	gz, err := gzip.NewReader(rc)
	if err != nil {
		_ = rc.Close()
		if errors.Is(err, io.EOF) {
			return nil, perr.Decompressf("gharchive: empty archive body")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeDecompress, "gharchive: invalid gzip stream")
	}
	return &gzipBody{Reader: gz, body: rc}, nil
}

// countingReader tracks bytes passing through it and remembers the first
// non-EOF read failure so the reader can tell which layer broke
type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && !errors.Is(err, io.EOF) && c.err == nil {
		c.err = err
	}
	return n, err
}

// transportBody is a countingReader over the raw HTTP body
type transportBody struct {
	countingReader
	rc io.ReadCloser
}

func (t *transportBody) Close() error { return t.rc.Close() }

// Reader streams Record values from a gzip file
type Reader struct {
	body    io.ReadCloser
	wire    *transportBody
	plain   *countingReader
	dec     *json.Decoder
	err     error
	records int
}

// NewReader decompresses rc and prepares a streaming decoder over it
func NewReader(rc io.ReadCloser) (*Reader, error) {
	wire := &transportBody{countingReader: countingReader{r: rc}, rc: rc}
	body, err := Decompress(wire)
	if err != nil {
		if wire.err != nil {
			return nil, transportError(wire.err, "gharchive: read archive body")
		}
		return nil, err
	}
	plain := &countingReader{r: body}
	dec := json.NewDecoder(plain)
	dec.UseNumber()
	return &Reader{body: body, wire: wire, plain: plain, dec: dec}, nil
}

// Next decodes the next top-level value; returns io.EOF when done.
// A value that is not an object (or null) is a parse error.
// After the first failure every call returns that same error
func (rd *Reader) Next() (Record, error) {
	if rd.err != nil {
		return nil, rd.err
	}
	var rec Record
	if err := rd.dec.Decode(&rec); err != nil {
		rd.err = rd.classify(err)
		return nil, rd.err
	}
	rd.records++
	return rec, nil
}

// classify maps a decode failure onto the layer that caused it:
// transport (fetch), gzip (decompress) or the JSON itself (parse)
func (rd *Reader) classify(err error) error {
	switch {
	case rd.wire.err != nil:
		return transportError(rd.wire.err, fmt.Sprintf("gharchive: archive body failed after %d records", rd.records))
	case rd.plain.err != nil:
		return perr.Wrapf(rd.plain.err, perr.ErrorCodeDecompress,
			"gharchive: gzip stream failed after %d records", rd.records)
	case errors.Is(err, io.EOF):
		return io.EOF
	default:
		return perr.Wrapf(err, perr.ErrorCodeParse,
			"gharchive: malformed record #%d", rd.records+1)
	}
}

// transportError is a fetch error unless the body read was cut short by cancellation
func transportError(err error, msg string) error {
	if errors.Is(err, context.Canceled) {
		return perr.Wrap(err, perr.ErrorCodeCanceled, msg)
	}
	return perr.Wrap(err, perr.ErrorCodeFetch, msg)
}

// Close closes the gzip stream and the underlying body
func (rd *Reader) Close() error {
	if rd.body == nil {
		return nil
	}
	err := rd.body.Close()
	rd.body = nil
	return err
}

// Stats returns the number of records decoded and uncompressed bytes read so far
func (rd *Reader) Stats() (records int, bytes int64) {
	return rd.records, rd.plain.n
}

// WireBytes returns the compressed bytes read from the body so far
func (rd *Reader) WireBytes() int64 { return rd.wire.n }
