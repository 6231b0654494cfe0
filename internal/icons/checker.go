package icons

import (
	"context"
	"net/http"
	"time"
)

// ExistenceChecker reports whether a URL resolves to a real resource.
// Implementations must never return an error: any failure is a negative
// result, since the caller always has a usable fallback.
type ExistenceChecker interface {
	Exists(ctx context.Context, url string) bool
}

// HTTPChecker verifies URL existence with a HEAD request.
type HTTPChecker struct {
	client *http.Client
}

// Compile-time verification that HTTPChecker implements ExistenceChecker
var _ ExistenceChecker = (*HTTPChecker)(nil)

// NewHTTPChecker returns a checker with the given request timeout.
// A zero timeout falls back to 10 seconds.
func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPChecker{
		client: &http.Client{Timeout: timeout},
	}
}

// Exists issues a HEAD request and reports whether the response was a
// success. Network errors and non-2xx statuses are treated identically.
func (c *HTTPChecker) Exists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }() // HEAD body is empty; close error not actionable

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
