// ABOUTME: Request DTOs for the JSON analysis endpoints
// ABOUTME: Provides validation tags and default values for incoming requests

package requests

import "mediacheck/core/domain"

// AnalyzeRequest is the body of a single text analysis
type AnalyzeRequest struct {
	// Text is the article text to analyze
	Text string `json:"text" minLength:"1" doc:"Article text to analyze"`

	// Method selects the detection method
	Method string `json:"method,omitempty" enum:"ml,rule" default:"ml" doc:"Detection method"`
}

// ApplyDefaults sets default values for optional fields
func (r *AnalyzeRequest) ApplyDefaults() {
	if r.Method == "" {
		r.Method = domain.DefaultMethod
	}
}

// BatchAnalyzeRequest is the body of a batch analysis
type BatchAnalyzeRequest struct {
	// Articles are analyzed independently; entries without text are skipped
	Articles []ArticleRequest `json:"articles" maxItems:"100" doc:"Articles to analyze"`
}

// ArticleRequest is one article of a batch. Other article fields such as a title are
// accepted and ignored.
type ArticleRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Text string `json:"text,omitempty" doc:"Article text"`
}

// Texts returns the article texts in request order
func (r *BatchAnalyzeRequest) Texts() []string {
	texts := make([]string, 0, len(r.Articles))
	for _, a := range r.Articles {
		texts = append(texts, a.Text)
	}
	return texts
}
