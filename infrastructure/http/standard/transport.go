// ABOUTME: Logging round tripper for outgoing HTTP requests
// ABOUTME: Logs method, URL, status and duration with the originating request id

package standard

import (
	"net/http"
	"time"

	"mediacheck/core/interfaces"
	"mediacheck/pkg/requestid"
)

// LoggingRoundTripper implements http.RoundTripper with logging
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    interfaces.Logger
}

// RoundTrip logs outgoing HTTP requests and forwards the request id upstream
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := requestid.FromContext(req.Context())
	if requestID == "" {
		requestID = requestid.New()
	}
	if req.Header.Get(requestid.Header) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(requestid.Header, requestID)
	}

	t.Logger.Debug("Outgoing HTTP request", map[string]interface{}{
		"request_id": requestID,
		"method":     req.Method,
		"url":        req.URL.String(),
		"host":       req.Host,
	})

	resp, err := t.transport().RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.Logger.Error("Outgoing HTTP request failed", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        req.URL.String(),
			"duration":   duration.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	t.Logger.Debug("Outgoing HTTP response", map[string]interface{}{
		"request_id": requestID,
		"method":     req.Method,
		"url":        req.URL.String(),
		"status":     resp.StatusCode,
		"duration":   duration.String(),
	})

	return resp, nil
}

func (t *LoggingRoundTripper) transport() http.RoundTripper {
	if t.Transport == nil {
		return http.DefaultTransport
	}
	return t.Transport
}
