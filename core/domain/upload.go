// ABOUTME: Uploaded media file model shared by the preview and deepfake flows
// ABOUTME: Resolves the media kind from the declared MIME type, sniffing when absent

package domain

import (
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MediaKind classifies an upload for previewing.
type MediaKind int

const (
	MediaUnsupported MediaKind = iota
	MediaImage
	MediaVideo
)

var mimeTokenRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9!#$&^_.+-]*/[A-Za-z0-9][A-Za-z0-9!#$&^_.+-]*$`)

// Upload is a file selected by the user.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewUpload builds an Upload. When the declared type is missing, generic or malformed the
// type is sniffed from the content.
func NewUpload(filename, declaredType string, data []byte) *Upload {
	contentType := strings.TrimSpace(declaredType)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	contentType = strings.ToLower(contentType)

	if contentType == "" || contentType == "application/octet-stream" || !mimeTokenRe.MatchString(contentType) {
		contentType = mimetype.Detect(data).String()
		if i := strings.IndexByte(contentType, ';'); i >= 0 {
			contentType = contentType[:i]
		}
	}

	return &Upload{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}
}

// Kind reports whether the upload is an image, a video, or neither.
func (u *Upload) Kind() MediaKind {
	switch {
	case strings.HasPrefix(u.ContentType, "image/"):
		return MediaImage
	case strings.HasPrefix(u.ContentType, "video/"):
		return MediaVideo
	default:
		return MediaUnsupported
	}
}
