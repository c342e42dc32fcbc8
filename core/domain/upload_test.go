package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestNewUpload_DeclaredType(t *testing.T) {
	u := NewUpload("clip.mp4", "Video/MP4; codecs=avc1", []byte("data"))
	assert.Equal(t, "video/mp4", u.ContentType)
	assert.Equal(t, MediaVideo, u.Kind())
}

func TestNewUpload_SniffsMissingOrGenericType(t *testing.T) {
	for _, declared := range []string{"", "application/octet-stream", "not a mime"} {
		u := NewUpload("photo", declared, pngHeader)
		assert.Equal(t, "image/png", u.ContentType, "declared %q", declared)
		assert.Equal(t, MediaImage, u.Kind())
	}
}

func TestUpload_Kind(t *testing.T) {
	tests := []struct {
		contentType string
		want        MediaKind
	}{
		{"image/jpeg", MediaImage},
		{"image/gif", MediaImage},
		{"video/webm", MediaVideo},
		{"application/pdf", MediaUnsupported},
		{"text/plain", MediaUnsupported},
	}

	for _, tt := range tests {
		u := &Upload{ContentType: tt.contentType}
		assert.Equal(t, tt.want, u.Kind(), tt.contentType)
	}
}
