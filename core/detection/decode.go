// ABOUTME: Decodes detection backend responses into tagged outcomes
// ABOUTME: A body carrying an error message always wins over the HTTP status

package detection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"mediacheck/core/domain"
	"mediacheck/core/interfaces"
)

// maxResponseBytes bounds how much of a backend response is read.
const maxResponseBytes = 8 << 20

// readResponse reads and closes the body, refusing oversized responses.
func readResponse(resp interfaces.Response) ([]byte, error) {
	body := resp.Body()
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxResponseBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxResponseBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}
	return data, nil
}

// decodeOutcome turns a backend answer into exactly one Outcome variant. report is the
// success value to decode into; fallback is the message used when the backend gives none.
func decodeOutcome(status int, body []byte, report domain.Outcome, fallback string) domain.Outcome {
	if msg := errorMessage(body); msg != "" {
		return &domain.Failure{Message: msg}
	}

	if status < 200 || status > 299 {
		return &domain.Failure{Message: fallback}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &domain.Failure{Message: fallback}
	}
	if err := json.Unmarshal(trimmed, report); err != nil {
		return &domain.Failure{Message: fallback}
	}
	return report
}

// errorMessage returns the non-empty string "error" field of a JSON object body.
func errorMessage(body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(envelope.Error, &msg); err != nil {
		return ""
	}
	return msg
}
