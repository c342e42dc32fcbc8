// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mediacheck/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(errors.UserMessage(err))
	}

	if errors.IsTooLarge(err) {
		return huma.NewError(http.StatusRequestEntityTooLarge, err.Error())
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("External service error", err)
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service")
		case apiErr.StatusCode >= 400:
			return huma.Error400BadRequest("External service request error", err)
		default:
			return huma.Error500InternalServerError("Unexpected external service response", err)
		}
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return huma.Error504GatewayTimeout("Detection service timed out")
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
