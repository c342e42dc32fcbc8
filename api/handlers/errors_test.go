package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"

	"mediacheck/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:  "nil error returns nil",
			input: nil,
		},
		{
			name:           "NotFoundError returns 404",
			input:          &errors.NotFoundError{Resource: "media", ID: "abc"},
			expectedStatus: 404,
			expectedDetail: "media not found: abc",
		},
		{
			name:           "ValidationError returns 400 with user message",
			input:          &errors.ValidationError{Field: "articles", Message: "No articles provided"},
			expectedStatus: 400,
			expectedDetail: "No articles provided",
		},
		{
			name:           "TooLargeError returns 413",
			input:          &errors.TooLargeError{Limit: 10},
			expectedStatus: 413,
			expectedDetail: "upload exceeds 10 bytes",
		},
		{
			name:           "ExternalAPIError with 500 returns 503",
			input:          &errors.ExternalAPIError{StatusCode: 500, Message: "server error"},
			expectedStatus: 503,
			expectedDetail: "External service error",
		},
		{
			name:           "ExternalAPIError with 429 returns 429",
			input:          &errors.ExternalAPIError{StatusCode: 429, Message: "rate limited"},
			expectedStatus: 429,
			expectedDetail: "Rate limited by external service",
		},
		{
			name:           "ExternalAPIError with 404 returns 400",
			input:          &errors.ExternalAPIError{StatusCode: 404, Message: "not found"},
			expectedStatus: 400,
			expectedDetail: "External service request error",
		},
		{
			name:           "ExternalAPIError with unexpected status returns 500",
			input:          &errors.ExternalAPIError{StatusCode: 200, Message: "ok but error"},
			expectedStatus: 500,
			expectedDetail: "Unexpected external service response",
		},
		{
			name:           "wrapped ValidationError returns 400",
			input:          fmt.Errorf("context: %w", &errors.ValidationError{Field: "text", Message: "Please enter text to analyze"}),
			expectedStatus: 400,
			expectedDetail: "Please enter text to analyze",
		},
		{
			name:           "deadline returns 504",
			input:          fmt.Errorf("submit: %w", context.DeadlineExceeded),
			expectedStatus: 504,
			expectedDetail: "Detection service timed out",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("some unknown error"),
			expectedStatus: 500,
			expectedDetail: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			if tt.input == nil {
				assert.Nil(t, result)
				return
			}

			humaErr, ok := result.(*huma.ErrorModel)
			assert.True(t, ok, "Expected huma.ErrorModel")
			assert.Equal(t, tt.expectedStatus, humaErr.Status)
			assert.Contains(t, humaErr.Detail, tt.expectedDetail)
		})
	}
}
