package httpclient

import (
	"net/http"
	"sync/atomic"
	"time"
)

// NewDefaultHTTPClient creates a simple HTTP client with a timeout
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// NewRotatingAgentClient creates an HTTP client that cycles through the
// given user agents, one per request. Feed endpoints throttle repeated
// identical agents, so requests rotate unless the caller set one already.
func NewRotatingAgentClient(timeout time.Duration, userAgents []string) *http.Client {
	if len(userAgents) == 0 {
		return NewDefaultHTTPClient(timeout)
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &rotatingAgentTransport{
			agents: userAgents,
			base:   http.DefaultTransport,
		},
	}
}

type rotatingAgentTransport struct {
	agents []string
	next   atomic.Uint64
	base   http.RoundTripper
}

func (t *rotatingAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		clone := req.Clone(req.Context())
		n := t.next.Add(1)
		clone.Header.Set("User-Agent", t.agents[int((n-1)%uint64(len(t.agents)))])
		req = clone
	}
	return t.base.RoundTrip(req)
}
