package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/version"
)

// Fetcher retrieves raw HTML over HTTP with bounded retry on transient
// failures — three attempts with a fixed two-second backoff, matching the
// retry policy the original fetcher declared via tenacity.
type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
}

// NewFetcher builds a Fetcher with timeout bounding each individual
// attempt (not the whole retry sequence).
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{},
		UserAgent:  version.Full(),
		Timeout:    timeout,
	}
}

// Fetch retrieves url's body as a string, retrying transient (network or
// 5xx) failures up to three attempts total.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(2*time.Second), 2)

	var body string
	operation := func() error {
		b, err := f.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if f.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return "", err // transient: network error, retry
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("server error: %d", resp.StatusCode) // transient
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", backoff.Permanent(fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("read body: %w", err))
	}
	return string(b), nil
}
