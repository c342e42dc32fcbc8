// ABOUTME: News analysis request and report models
// ABOUTME: Mirrors the JSON contract of the /detect-news endpoint

package domain

import (
	"strings"

	"mediacheck/core/errors"
)

// Data types accepted by /detect-news.
const (
	DataTypeText = "text"
	DataTypeURL  = "url"
)

// DefaultMethod is the detection method used when a caller does not pick one.
const DefaultMethod = "ml"

// Blocking alert messages for empty news input.
const (
	MsgEmptyText = "Please enter text to analyze"
	MsgEmptyURL  = "Please enter a URL"
)

// Messages shown when the backend fails without saying why.
const (
	MsgTextAnalysisFailed = "Analysis failed"
	MsgURLAnalysisFailed  = "URL analysis failed"
)

// NewsRequest is a single text or URL submission.
type NewsRequest struct {
	DataType string
	Text     string
	URL      string
	Method   string
}

// NewTextRequest builds a text submission with its input trimmed.
func NewTextRequest(text, method string) NewsRequest {
	return NewsRequest{DataType: DataTypeText, Text: strings.TrimSpace(text), Method: method}
}

// NewURLRequest builds a URL submission with its input trimmed.
func NewURLRequest(rawURL string) NewsRequest {
	return NewsRequest{DataType: DataTypeURL, URL: strings.TrimSpace(rawURL)}
}

// Validate reports a ValidationError when the submission has nothing to analyze.
func (r NewsRequest) Validate() error {
	switch r.DataType {
	case DataTypeText:
		if strings.TrimSpace(r.Text) == "" {
			return &errors.ValidationError{Field: "text", Message: MsgEmptyText}
		}
	case DataTypeURL:
		if strings.TrimSpace(r.URL) == "" {
			return &errors.ValidationError{Field: "url", Message: MsgEmptyURL}
		}
	default:
		return &errors.ValidationError{Field: "data_type", Message: "Invalid data type"}
	}
	return nil
}

// FallbackMessage is the error text shown when the backend gives no message of its own.
func (r NewsRequest) FallbackMessage() string {
	if r.DataType == DataTypeURL {
		return MsgURLAnalysisFailed
	}
	return MsgTextAnalysisFailed
}

// Input returns the submitted text or URL.
func (r NewsRequest) Input() string {
	if r.DataType == DataTypeURL {
		return r.URL
	}
	return r.Text
}

// NewsReport is the success variant of a news analysis.
type NewsReport struct {
	Prediction         string             `json:"prediction"`
	Confidence         float64            `json:"confidence"`
	FakeProbability    float64            `json:"fake_probability"`
	RealProbability    float64            `json:"real_probability"`
	Method             string             `json:"method,omitempty"`
	Warnings           []string           `json:"warnings,omitempty"`
	LinguisticFeatures LinguisticFeatures `json:"linguistic_features"`
	Text               string             `json:"text,omitempty"`
	URL                string             `json:"url,omitempty"`
	Title              string             `json:"title,omitempty"`
}

// IsFake reports whether the content was classified as fake.
func (r *NewsReport) IsFake() bool {
	return r.Prediction == PredictionFake
}
