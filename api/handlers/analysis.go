// ABOUTME: JSON analysis handlers for the Huma API
// ABOUTME: Provides single and batch news analysis, usage stats and a health check

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mediacheck/api/dto/mappers"
	"mediacheck/api/dto/requests"
	"mediacheck/api/dto/responses"
	"mediacheck/core/detection"
	"mediacheck/core/domain"
	"mediacheck/core/interfaces"
	"mediacheck/pkg/featureflags"
)

// Version is reported by the health endpoint.
var Version = "1.0.0"

// BatchAnalyzer runs a batch of text analyses
type BatchAnalyzer interface {
	Analyze(ctx context.Context, texts []string) (*domain.BatchSummary, error)
}

// Pinger is implemented by cache backends that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// AnalysisHandler handles the JSON analysis endpoints
type AnalysisHandler struct {
	news   interfaces.NewsSubmitter
	batch  BatchAnalyzer
	stats  *detection.Stats
	cache  interfaces.Cache
	logger interfaces.Logger
}

// NewAnalysisHandler creates a new analysis handler. stats and cache may be nil.
func NewAnalysisHandler(news interfaces.NewsSubmitter, batch BatchAnalyzer, stats *detection.Stats, cache interfaces.Cache, logger interfaces.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		news:   news,
		batch:  batch,
		stats:  stats,
		cache:  cache,
		logger: logger,
	}
}

// RegisterRoutes registers all analysis routes
func (h *AnalysisHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "analyzeText",
		Method:      http.MethodPost,
		Path:        "/api/analyze",
		Summary:     "Analyze a news text",
		Description: "Sends one text to the detection service and returns its report",
		Tags:        []string{"Analysis"},
	}, h.Analyze)

	huma.Register(api, huma.Operation{
		OperationID: "batchAnalyze",
		Method:      http.MethodPost,
		Path:        "/api/batch-analyze",
		Summary:     "Analyze many news texts",
		Description: "Analyzes every article with text and summarizes how many were classified as fake",
		Tags:        []string{"Analysis"},
	}, h.BatchAnalyze)

	huma.Register(api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Usage statistics",
		Description: "Counts analyses performed since the service started",
		Tags:        []string{"Service"},
	}, h.Stats)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check",
		Tags:        []string{"Service"},
	}, h.Health)
}

// AnalyzeInput defines the input for the Analyze operation
type AnalyzeInput struct {
	Body requests.AnalyzeRequest
}

// AnalyzeOutput defines the output for the Analyze operation
type AnalyzeOutput struct {
	Body *responses.NewsReportResponse
}

// Analyze handles POST /api/analyze
func (h *AnalysisHandler) Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	input.Body.ApplyDefaults()

	outcome, err := h.news.Submit(ctx, domain.NewTextRequest(input.Body.Text, input.Body.Method))
	if err != nil {
		return nil, toHumaError(err)
	}

	switch o := outcome.(type) {
	case *domain.NewsReport:
		return &AnalyzeOutput{Body: mappers.ToNewsReportResponse(o)}, nil
	case *domain.Failure:
		return nil, huma.Error502BadGateway(o.Message)
	default:
		return nil, huma.Error500InternalServerError("Unexpected analysis result")
	}
}

// BatchAnalyzeInput defines the input for the BatchAnalyze operation
type BatchAnalyzeInput struct {
	Body requests.BatchAnalyzeRequest
}

// BatchAnalyzeOutput defines the output for the BatchAnalyze operation
type BatchAnalyzeOutput struct {
	Body *responses.BatchAnalyzeResponse
}

// BatchAnalyze handles POST /api/batch-analyze
func (h *AnalysisHandler) BatchAnalyze(ctx context.Context, input *BatchAnalyzeInput) (*BatchAnalyzeOutput, error) {
	if !featureflags.IsEnabled(ctx, featureflags.BatchEnabled) {
		return nil, huma.Error404NotFound("Batch analysis is disabled")
	}

	summary, err := h.batch.Analyze(ctx, input.Body.Texts())
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("Batch analysis failed", map[string]interface{}{
				"articles": len(input.Body.Articles),
				"error":    err.Error(),
			})
		}
		return nil, toHumaError(err)
	}

	return &BatchAnalyzeOutput{Body: mappers.ToBatchAnalyzeResponse(summary)}, nil
}

// StatsOutput defines the output for the Stats operation
type StatsOutput struct {
	Body responses.StatsResponse
}

// Stats handles GET /api/stats
func (h *AnalysisHandler) Stats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	return &StatsOutput{Body: mappers.ToStatsResponse(h.stats.Snapshot())}, nil
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /api/health
func (h *AnalysisHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{Body: responses.HealthResponse{Status: "ok", Version: Version, Cache: "ok"}}

	switch c := h.cache.(type) {
	case nil:
		out.Body.Cache = "disabled"
	case Pinger:
		if err := c.Ping(ctx); err != nil {
			out.Body.Status = "degraded"
			out.Body.Cache = "unreachable"
		}
	}
	return out, nil
}
