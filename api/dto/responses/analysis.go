// ABOUTME: Response DTOs for the JSON analysis, stats and health endpoints
// ABOUTME: Field names follow the detection backend's snake_case contract

package responses

// NewsReportResponse is a successful news analysis
type NewsReportResponse struct {
	Prediction         string                 `json:"prediction" doc:"Fake or Real"`
	Confidence         float64                `json:"confidence" doc:"Classifier confidence between 0 and 1"`
	FakeProbability    float64                `json:"fake_probability"`
	RealProbability    float64                `json:"real_probability"`
	Method             string                 `json:"method,omitempty"`
	Warnings           []string               `json:"warnings,omitempty"`
	LinguisticFeatures map[string]interface{} `json:"linguistic_features,omitempty" copier:"-"`
	Text               string                 `json:"text,omitempty"`
	URL                string                 `json:"url,omitempty"`
	Title              string                 `json:"title,omitempty"`
}

// BatchItemResponse is the outcome of one article in a batch
type BatchItemResponse struct {
	Index  int                 `json:"index" doc:"Position of the article in the request"`
	Result *NewsReportResponse `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// BatchAnalyzeResponse summarizes a batch analysis
type BatchAnalyzeResponse struct {
	TotalArticles  int                 `json:"total_articles"`
	FakeArticles   int                 `json:"fake_articles"`
	RealArticles   int                 `json:"real_articles"`
	FailedArticles int                 `json:"failed_articles"`
	FakePercentage float64             `json:"fake_percentage"`
	Details        []BatchItemResponse `json:"details"`
}

// StatsResponse reports analyses performed since startup
type StatsResponse struct {
	TotalChecks  int64 `json:"total_checks"`
	FakeDetected int64 `json:"fake_detected"`
	NewsChecks   int64 `json:"news_checks"`
	FakeNews     int64 `json:"fake_news"`
	MediaChecks  int64 `json:"media_checks"`
	FakeMedia    int64 `json:"fake_media"`
	Failures     int64 `json:"failures"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status  string `json:"status" enum:"ok,degraded"`
	Version string `json:"version"`
	Cache   string `json:"cache" doc:"Cache backend status"`
}
