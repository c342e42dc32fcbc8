// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: GETs retry with exponential backoff; POSTs to the detection backend are sent exactly once

package standard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"mediacheck/core/interfaces"
)

const (
	maxRetries = 3
	userAgent  = "Mediacheck/1.0"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// When logger is non-nil every outgoing request is logged at debug level.
func NewStandardHTTPClient(timeout time.Duration, logger interfaces.Logger) *StandardHTTPClient {
	return newClient(timeout, http.DefaultTransport, logger)
}

func newClient(timeout time.Duration, transport http.RoundTripper, logger interfaces.Logger) *StandardHTTPClient {
	if logger != nil {
		transport = &LoggingRoundTripper{Transport: transport, Logger: logger}
	}

	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			resp = nil
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, ErrBlockedAddress) {
				return nil, err
			}
			continue
		}

		// Don't retry on success or 4xx errors, and hand back the last 5xx as is
		if resp.StatusCode < 500 || attempt == maxRetries-1 {
			break
		}

		// Close body for retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// Post performs a single HTTP POST request with the given content type
func (c *StandardHTTPClient) Post(ctx context.Context, url string, contentType string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
