package probe

import (
	"context"
	"net/http"
	"time"
)

// HTTPProbe checks connectivity with a HEAD request to a well-known endpoint.
type HTTPProbe struct {
	url    string
	client *http.Client
}

// NewHTTPProbe creates a probe whose whole exchange is bounded by timeout.
func NewHTTPProbe(url string, timeout time.Duration) *HTTPProbe {
	return &HTTPProbe{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Reachable reports whether the endpoint answered HEAD with 200 OK.
func (p *HTTPProbe) Reachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}
