// Package httpclient builds the shared HTTP client used by all fetchers. The
// client is constructed once and passed around explicitly so tests can inject
// their own.
package httpclient

import (
	"io"
	"net/http"
	"time"
)

const (
	DefaultMaxRetries = 2
	DefaultBackoff    = 600 * time.Millisecond
)

// Transient statuses worth a retry. Everything else fails immediately.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// New returns a connection-pooled client whose transport retries transient
// failures with exponential backoff. The timeout bounds each individual call;
// it is the only cancellation mechanism the pipeline relies on.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &retryTransport{
			next:       http.DefaultTransport,
			maxRetries: DefaultMaxRetries,
			backoff:    DefaultBackoff,
		},
	}
}

type retryTransport struct {
	next       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Only safe, bodiless requests are replayed.
	if !safeMethod(req.Method) || req.Body != nil {
		return t.next.RoundTrip(req)
	}

	var resp *http.Response
	var err error

	delay := t.backoff
	for attempt := 0; ; attempt++ {
		resp, err = t.next.RoundTrip(req)
		if err == nil && !retryableStatuses[resp.StatusCode] {
			return resp, nil
		}
		if attempt >= t.maxRetries {
			break
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return resp, err
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
