package datatable

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"sqlterm/internal/logging"
)

var httpLog = logging.Component("load_http")

// HTTPOptions controls a remote source load (SPEC_FULL.md §4.13): --url
// fetches a CSV or JSON payload over HTTP(S), bounded by a configurable
// timeout and retried with backoff on network errors and 5xx responses.
// Remote XLSX payloads are rejected.
type HTTPOptions struct {
	Timeout     time.Duration
	MaxRetries  int
	NoHeaderRow bool
}

// DefaultHTTPOptions mirrors Config.HTTPTimeoutSeconds' default.
func DefaultHTTPOptions() HTTPOptions {
	return HTTPOptions{Timeout: 30 * time.Second, MaxRetries: 3}
}

// LoadHTTP fetches url's body and loads it the same way LoadFile loads a
// local path, choosing a loader from the URL's path extension (and, for
// gzip/xz payloads, transparently decompressing), grounded on
// fileloader/proxy.go's format-agnostic dispatch.
func LoadHTTP(ctx context.Context, name, url string, opts HTTPOptions) (*Table, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultHTTPOptions().Timeout
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.MaxRetries).
		SetRetryWaitTime(250 * time.Millisecond).
		SetRetryMaxWaitTime(4 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry transient failures only: network errors and 5xx
			// responses, never a 4xx response.
			return err != nil || r.StatusCode() >= 500
		})

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %d", url, resp.StatusCode())
	}
	httpLog.Debug().Str("url", url).Int("bytes", len(resp.Body())).Msg("fetched remote source")

	body := resp.Body()
	compression := DetectCompression(url, body)
	r, err := Decompress(bytes.NewReader(body), compression)
	if err != nil {
		return nil, fmt.Errorf("decompress %q: %w", url, err)
	}

	inner := stripCompressedSuffix(strings.ToLower(url))
	if i := strings.IndexAny(inner, "?#"); i >= 0 {
		inner = inner[:i]
	}
	ext := strings.ToLower(path.Ext(inner))

	tableName := name
	if tableName == "" {
		tableName = TableNameFromPath(inner)
	}

	switch ext {
	case ".csv":
		return LoadCSV(tableName, r, CSVOptions{NoHeaderRow: opts.NoHeaderRow})
	case ".json":
		return LoadJSON(tableName, r)
	case ".xlsx":
		return nil, fmt.Errorf("remote xlsx sources are not supported; download the file and pass its local path instead")
	default:
		return nil, fmt.Errorf("cannot determine file type from url %q", url)
	}
}
