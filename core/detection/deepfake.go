// ABOUTME: Media analysis submitter forwarding uploads to /detect-deepfake
// ABOUTME: Builds a single-part multipart body and maps failures to display messages

package detection

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"mediacheck/core/domain"
	"mediacheck/core/errors"
	"mediacheck/core/interfaces"
)

const deepfakePath = "/detect-deepfake"

// DeepfakeService submits uploaded media for deepfake detection
type DeepfakeService struct {
	deps     interfaces.Dependencies
	endpoint string
	stats    *Stats
}

// NewDeepfakeService creates a new media submitter
func NewDeepfakeService(deps interfaces.Dependencies, opts Options) *DeepfakeService {
	return &DeepfakeService{
		deps:     deps,
		endpoint: strings.TrimRight(opts.BackendURL, "/") + deepfakePath,
		stats:    opts.Stats,
	}
}

// Submit sends the upload as the multipart field "file". A missing file is a validation
// error and nothing is sent.
func (s *DeepfakeService) Submit(ctx context.Context, upload *domain.Upload) (domain.Outcome, error) {
	if upload == nil || upload.Filename == "" {
		return nil, &errors.ValidationError{Field: "file", Message: domain.MsgNoFile}
	}

	body, contentType, err := multipartBody(upload)
	if err != nil {
		return nil, errors.WrapError(err, "failed to build upload")
	}

	log := loggerOf(s.deps)
	log.Info("Submitting media analysis", map[string]interface{}{
		"filename":     upload.Filename,
		"content_type": upload.ContentType,
		"size":         len(upload.Data),
	})

	resp, err := s.deps.HTTPClient.Post(ctx, s.endpoint, contentType, body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn("Media analysis request failed", map[string]interface{}{
			"filename": upload.Filename,
			"error":    err.Error(),
		})
		outcome := &domain.Failure{Message: domain.MsgDeepfakeFailed}
		s.stats.Record(outcome)
		return outcome, nil
	}

	data, err := readResponse(resp)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn("Failed to read media analysis response", map[string]interface{}{
			"status": resp.StatusCode(),
			"error":  err.Error(),
		})
		data = nil
	}

	outcome := decodeOutcome(resp.StatusCode(), data, &domain.DeepfakeReport{}, domain.MsgDeepfakeFailed)
	s.stats.Record(outcome)

	switch o := outcome.(type) {
	case *domain.DeepfakeReport:
		log.Info("Media analysis completed", map[string]interface{}{
			"file_type":  o.FileType,
			"prediction": o.Prediction,
			"confidence": o.Confidence,
		})
	case *domain.Failure:
		log.Warn("Media analysis returned an error", map[string]interface{}{
			"status":  resp.StatusCode(),
			"message": o.Message,
		})
	}

	return outcome, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// multipartBody encodes the upload as the single part "file", keeping its filename and type.
func multipartBody(upload *domain.Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(upload.Filename)))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
