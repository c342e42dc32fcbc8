// ABOUTME: File picker preview service
// ABOUTME: Images become data URLs; videos are cached and streamed back by id, one per owner

package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"html/template"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"mediacheck/core/domain"
	coreerrors "mediacheck/core/errors"
	"mediacheck/core/interfaces"
)

const (
	mediaKeyPrefix = "media:"
	ownerKeyPrefix = "media-owner:"

	// MediaPath is the route serving stored videos; the id is appended.
	MediaPath = "/media/"
)

// Service builds previews for selected files
type Service struct {
	deps interfaces.Dependencies
	ttl  time.Duration
}

// NewService creates a preview service keeping videos for ttl
func NewService(deps interfaces.Dependencies, ttl time.Duration) *Service {
	return &Service{deps: deps, ttl: ttl}
}

// Select returns the preview state for an upload. Images are inlined as data URLs, videos
// are stored and referenced by URL, and anything else yields an unsupported notice.
// owner identifies the page making the selection: only its latest video is kept, so a new
// selection releases the previous blob. An empty owner keeps every blob until it expires.
func (s *Service) Select(ctx context.Context, owner string, upload *domain.Upload) (*domain.Preview, error) {
	switch upload.Kind() {
	case domain.MediaImage:
		s.release(ctx, owner, "")
		preview := &domain.Preview{
			Kind:     domain.MediaImage,
			ImageSrc: dataURL(upload.ContentType, upload.Data),
		}
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(upload.Data)); err == nil {
			preview.Width, preview.Height = cfg.Width, cfg.Height
		}
		return preview, nil

	case domain.MediaVideo:
		if s.deps.Cache == nil {
			return nil, errors.New("no cache configured for video previews")
		}
		id := uuid.NewString()
		if err := s.deps.Cache.Set(ctx, mediaKeyPrefix+id, encodeMedia(upload.ContentType, upload.Data), s.ttl); err != nil {
			return nil, coreerrors.WrapError(err, "failed to store video preview")
		}
		s.release(ctx, owner, id)
		if s.deps.Logger != nil {
			s.deps.Logger.Debug("Stored video preview", map[string]interface{}{
				"id":   id,
				"size": len(upload.Data),
				"ttl":  s.ttl.String(),
			})
		}
		return &domain.Preview{
			Kind:     domain.MediaVideo,
			VideoSrc: MediaPath + id,
		}, nil

	default:
		s.release(ctx, owner, "")
		return &domain.Preview{
			Kind:   domain.MediaUnsupported,
			Notice: domain.MsgUnsupportedPreview,
		}, nil
	}
}

// Media returns a stored video, or a NotFoundError once it has expired.
func (s *Service) Media(ctx context.Context, id string) (*domain.StoredMedia, error) {
	if s.deps.Cache == nil || id == "" {
		return nil, &coreerrors.NotFoundError{Resource: "media", ID: id}
	}

	blob, err := s.deps.Cache.Get(ctx, mediaKeyPrefix+id)
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return nil, &coreerrors.NotFoundError{Resource: "media", ID: id}
	}
	if err != nil {
		return nil, err
	}

	media, ok := decodeMedia(blob)
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "media", ID: id}
	}
	return media, nil
}

// release deletes the video previously stored for owner and records next as its current
// blob. An empty next only forgets the old one.
func (s *Service) release(ctx context.Context, owner, next string) {
	if owner == "" || s.deps.Cache == nil {
		return
	}
	ownerKey := ownerKeyPrefix + owner

	if prev, err := s.deps.Cache.Get(ctx, ownerKey); err == nil && string(prev) != next {
		if err := s.deps.Cache.Delete(ctx, mediaKeyPrefix+string(prev)); err != nil && s.deps.Logger != nil {
			s.deps.Logger.Warn("Failed to delete previous video preview", map[string]interface{}{
				"id":    string(prev),
				"error": err.Error(),
			})
		}
	}

	var err error
	if next == "" {
		err = s.deps.Cache.Delete(ctx, ownerKey)
	} else {
		err = s.deps.Cache.Set(ctx, ownerKey, []byte(next), s.ttl)
	}
	if err != nil && s.deps.Logger != nil {
		s.deps.Logger.Warn("Failed to record video preview owner", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// dataURL encodes data as a base64 data URL. The MIME type comes from NewUpload and is a
// validated token, so the result is safe to use as an element source.
func dataURL(contentType string, data []byte) template.URL {
	return template.URL("data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// Media blobs are stored as "<content type>\x00<bytes>".
func encodeMedia(contentType string, data []byte) []byte {
	blob := make([]byte, 0, len(contentType)+1+len(data))
	blob = append(blob, contentType...)
	blob = append(blob, 0)
	return append(blob, data...)
}

func decodeMedia(blob []byte) (*domain.StoredMedia, bool) {
	i := bytes.IndexByte(blob, 0)
	if i < 0 {
		return nil, false
	}
	return &domain.StoredMedia{ContentType: string(blob[:i]), Data: blob[i+1:]}, true
}
