package safehttp

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/carmex/tierMCP/pkg/buildinfo"
	"github.com/carmex/tierMCP/pkg/errors"
	"github.com/carmex/tierMCP/pkg/httputil"
)

// FetchOption configures a Fetcher.
type FetchOption func(*Fetcher)

// WithHTTPClient overrides the HTTP client, mainly for tests.
// Redirect handling is still forced off on the supplied client.
func WithHTTPClient(c *http.Client) FetchOption {
	return func(f *Fetcher) { f.client = c }
}

// Fetcher downloads remote images under the configured limits.
type Fetcher struct {
	client *http.Client
	limits Limits
}

// NewFetcher creates a Fetcher. Zero fields in limits fall back to the
// package defaults.
func NewFetcher(limits Limits, opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		limits: limits.withDefaults(),
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(f)
	}
	// Returning the 3xx response as-is makes redirects visible to the
	// status check below, which rejects them.
	f.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	f.client.Timeout = f.limits.FetchTimeout
	return f
}

// Limits returns the effective fetch bounds.
func (f *Fetcher) Limits() Limits {
	return f.limits
}

// Fetch downloads rawURL and returns the body bytes. Transient network
// and 5xx failures are retried with backoff inside the per-fetch
// timeout. Every failure maps to FETCH_FAILED; the caller decides what
// fallback the affected item gets.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.limits.FetchTimeout)
	defer cancel()

	var data []byte
	err := httputil.Retry(ctx, f.limits.RetryAttempts, f.limits.RetryDelay, func() error {
		b, err := f.fetchOnce(ctx, rawURL)
		if err != nil {
			return err
		}
		data = b
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, err, "fetch %s", rawURL)
	}
	return data, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "tiermcp/"+buildinfo.Version)
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// proceed
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return nil, fmt.Errorf("redirect blocked (status %d)", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{Err: fmt.Errorf("status %d", resp.StatusCode)}
	default:
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	// Read one byte past the cap so an oversize body is detected
	// without draining it.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.limits.MaxBytes+1))
	if err != nil {
		return nil, &httputil.RetryableError{Err: err}
	}
	if int64(len(body)) > f.limits.MaxBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", f.limits.MaxBytes)
	}
	return body, nil
}
