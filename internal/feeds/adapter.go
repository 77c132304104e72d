// Package feeds contains the upstream source adapters for the four
// dashboard domains. Every adapter degrades to an empty value on failure;
// the caller decides whether to log, count, or cache the degraded result.
package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joblinours/cyberdash/internal/models"
)

// Adapter fetches one domain's snapshot from its upstream source. Fetch
// returns a value that is always safe to serialize, even alongside a
// non-nil error.
type Adapter interface {
	Domain() models.Domain
	Fetch(ctx context.Context) (any, error)
}

const userAgent = "cyberdash/1.0"

// newHTTPClient builds an HTTP client with sane pooling limits for a
// handful of upstream hosts.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// getBody issues a GET and returns the response body. Non-2xx statuses are
// errors; the body is read fully so the connection can be reused.
func getBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/xml, text/xml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return body, nil
}
