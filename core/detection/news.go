// ABOUTME: News analysis submitter forwarding text and URL submissions to /detect-news
// ABOUTME: Validates input, caches successful reports and maps failures to display messages

package detection

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"mediacheck/core/domain"
	"mediacheck/core/interfaces"
	"mediacheck/pkg/featureflags"
)

const (
	newsPath        = "/detect-news"
	formContentType = "application/x-www-form-urlencoded"
)

// Options configures the submitters.
type Options struct {
	// BackendURL is the detection service base URL
	BackendURL string

	// ResultCacheTTL is how long successful news reports are reused
	ResultCacheTTL time.Duration

	// Stats receives every outcome; may be nil
	Stats *Stats
}

// NewsService submits news analysis requests
type NewsService struct {
	deps     interfaces.Dependencies
	endpoint string
	cacheTTL time.Duration
	stats    *Stats
}

// NewNewsService creates a new news submitter
func NewNewsService(deps interfaces.Dependencies, opts Options) *NewsService {
	return &NewsService{
		deps:     deps,
		endpoint: strings.TrimRight(opts.BackendURL, "/") + newsPath,
		cacheTTL: opts.ResultCacheTTL,
		stats:    opts.Stats,
	}
}

// SubmitText analyzes a block of text with the given detection method
func (s *NewsService) SubmitText(ctx context.Context, text, method string) (domain.Outcome, error) {
	return s.Submit(ctx, domain.NewTextRequest(text, method))
}

// SubmitURL analyzes the article at rawURL
func (s *NewsService) SubmitURL(ctx context.Context, rawURL string) (domain.Outcome, error) {
	return s.Submit(ctx, domain.NewURLRequest(rawURL))
}

// Submit validates the request and sends it to the backend. A validation failure is
// returned as an error and nothing is sent. Backend and transport failures come back as
// *domain.Failure. The only other error is the context's own.
func (s *NewsService) Submit(ctx context.Context, req domain.NewsRequest) (domain.Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form := newsForm(req)
	log := loggerOf(s.deps)
	cacheKey := "news:" + hashKey(form)
	useCache := s.deps.Cache != nil && s.cacheTTL > 0 && featureflags.IsEnabled(ctx, featureflags.ResultCache)

	if useCache {
		if report := s.cachedReport(ctx, cacheKey); report != nil {
			log.Debug("News result served from cache", map[string]interface{}{
				"data_type": req.DataType,
			})
			s.stats.Record(report)
			return report, nil
		}
	}

	log.Info("Submitting news analysis", map[string]interface{}{
		"data_type": req.DataType,
		"method":    req.Method,
		"length":    len(req.Input()),
	})

	resp, err := s.deps.HTTPClient.Post(ctx, s.endpoint, formContentType, strings.NewReader(form))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn("News analysis request failed", map[string]interface{}{
			"data_type": req.DataType,
			"error":     err.Error(),
		})
		outcome := &domain.Failure{Message: req.FallbackMessage()}
		s.stats.Record(outcome)
		return outcome, nil
	}

	body, err := readResponse(resp)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn("Failed to read news analysis response", map[string]interface{}{
			"status": resp.StatusCode(),
			"error":  err.Error(),
		})
		body = nil
	}

	outcome := decodeOutcome(resp.StatusCode(), body, &domain.NewsReport{}, req.FallbackMessage())
	s.stats.Record(outcome)

	switch o := outcome.(type) {
	case *domain.NewsReport:
		log.Info("News analysis completed", map[string]interface{}{
			"data_type":  req.DataType,
			"prediction": o.Prediction,
			"confidence": o.Confidence,
		})
		if useCache {
			s.storeReport(ctx, cacheKey, o)
		}
	case *domain.Failure:
		log.Warn("News analysis returned an error", map[string]interface{}{
			"data_type": req.DataType,
			"status":    resp.StatusCode(),
			"message":   o.Message,
		})
	}

	return outcome, nil
}

func newsForm(req domain.NewsRequest) string {
	form := url.Values{}
	form.Set("data_type", req.DataType)
	if req.DataType == domain.DataTypeURL {
		form.Set("url", req.URL)
	} else {
		form.Set("text", req.Text)
		form.Set("detection_method", req.Method)
	}
	return form.Encode()
}

func (s *NewsService) cachedReport(ctx context.Context, key string) *domain.NewsReport {
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	var report domain.NewsReport
	if err := json.Unmarshal(data, &report); err != nil {
		_ = s.deps.Cache.Delete(ctx, key)
		return nil
	}
	return &report
}

func (s *NewsService) storeReport(ctx context.Context, key string, report *domain.NewsReport) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		loggerOf(s.deps).Warn("Failed to cache news result", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
