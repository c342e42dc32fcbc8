// ABOUTME: Preview state rendered into the #mediaPreview container
// ABOUTME: Also defines link preview metadata for analyzed URLs

package domain

import "html/template"

// MsgUnsupportedPreview is shown when a file is neither an image nor a video.
const MsgUnsupportedPreview = "Unsupported file type. Select an image or a video to preview it."

// Preview describes what the media preview container shows after a file selection.
type Preview struct {
	Kind MediaKind

	// ImageSrc is a data URL built from the uploaded bytes.
	ImageSrc template.URL

	// Width and Height are the decoded image dimensions, zero when unknown.
	Width  int
	Height int

	// VideoSrc points at the stored media endpoint.
	VideoSrc string

	Notice string
}

// ShowImage reports whether the image element is visible.
func (p *Preview) ShowImage() bool { return p.Kind == MediaImage }

// ShowVideo reports whether the video element is visible.
func (p *Preview) ShowVideo() bool { return p.Kind == MediaVideo }

// StoredMedia is an upload kept in the cache so the video element can stream it.
type StoredMedia struct {
	ContentType string
	Data        []byte
}

// LinkPreview is page metadata for a submitted news URL.
type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Empty reports whether no useful metadata was found.
func (p *LinkPreview) Empty() bool {
	return p.Title == "" && p.Description == "" && p.Image == ""
}
