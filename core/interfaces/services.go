// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts the HTTP handlers and CLI depend on

package interfaces

import (
	"context"

	"mediacheck/core/domain"
)

// NewsSubmitter sends text or URL submissions to the news detection endpoint.
// Validation failures are returned as errors; upstream failures come back as *domain.Failure.
type NewsSubmitter interface {
	Submit(ctx context.Context, req domain.NewsRequest) (domain.Outcome, error)
}

// DeepfakeSubmitter sends an uploaded file to the deepfake detection endpoint.
type DeepfakeSubmitter interface {
	Submit(ctx context.Context, upload *domain.Upload) (domain.Outcome, error)
}

// PreviewService turns a file selection into preview state. owner scopes stored videos
// so each page keeps only its latest one.
type PreviewService interface {
	Select(ctx context.Context, owner string, upload *domain.Upload) (*domain.Preview, error)
	Media(ctx context.Context, id string) (*domain.StoredMedia, error)
}

// LinkPreviewService extracts page metadata for a submitted URL
type LinkPreviewService interface {
	Preview(ctx context.Context, url string) (*domain.LinkPreview, error)
}

// ViewStore persists the tab view state per browser session
type ViewStore interface {
	Load(ctx context.Context, session string) domain.ViewState
	Save(ctx context.Context, session string, state domain.ViewState) error
}
