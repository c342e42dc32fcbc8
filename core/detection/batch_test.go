package detection

import (
	"context"
	"io"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mediacheck/core/domain"
	coreerrors "mediacheck/core/errors"
	"mediacheck/core/interfaces"
)

func TestBatchAnalyzer_Summary(t *testing.T) {
	client := &mockHTTPClient{postFunc: func(_ context.Context, _, _ string, body io.Reader) (interfaces.Response, error) {
		raw, _ := io.ReadAll(body)
		form, _ := url.ParseQuery(string(raw))
		text := form.Get("text")
		switch {
		case strings.Contains(text, "fail"):
			return &mockResponse{statusCode: 500, body: `{"error":"model crashed"}`}, nil
		case strings.Contains(text, "SHOCKING"):
			return &mockResponse{statusCode: 200, body: `{"prediction":"Fake","confidence":0.9,"fake_probability":0.9,"real_probability":0.1}`}, nil
		default:
			return &mockResponse{statusCode: 200, body: realReport}, nil
		}
	}}
	news := NewNewsService(interfaces.Dependencies{HTTPClient: client}, Options{BackendURL: "http://backend"})
	batch := NewBatchAnalyzer(news, 2, nil)

	summary, err := batch.Analyze(context.Background(), []string{
		"SHOCKING claim",
		"calm report",
		"   ",
		"this will fail",
		"another SHOCKING claim",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalArticles)
	assert.Equal(t, 2, summary.FakeArticles)
	assert.Equal(t, 1, summary.RealArticles)
	assert.Equal(t, 1, summary.FailedArticles)
	assert.Equal(t, 50.0, summary.FakePercentage)
	require.Len(t, summary.Items, 4)
	assert.Equal(t, "model crashed", summary.Items[2].Error)
	assert.Equal(t, 3, summary.Items[2].Index, "index is the position in the request")
	assert.Equal(t, 4, summary.Items[3].Index)
}

func TestBatchAnalyzer_NoArticles(t *testing.T) {
	batch := NewBatchAnalyzer(NewNewsService(interfaces.Dependencies{}, Options{}), 2, nil)

	_, err := batch.Analyze(context.Background(), []string{"", "  "})
	require.Error(t, err)
	assert.Equal(t, domain.MsgNoArticles, coreerrors.UserMessage(err))
}

func TestBatchAnalyzer_RespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak int32
	client := &mockHTTPClient{postFunc: func(context.Context, string, string, io.Reader) (interfaces.Response, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return &mockResponse{statusCode: 200, body: realReport}, nil
	}}
	news := NewNewsService(interfaces.Dependencies{HTTPClient: client}, Options{BackendURL: "http://backend"})
	batch := NewBatchAnalyzer(news, 3, nil)

	texts := make([]string, 12)
	for i := range texts {
		texts[i] = "article"
	}
	summary, err := batch.Analyze(context.Background(), texts)
	require.NoError(t, err)

	assert.Equal(t, 12, summary.RealArticles)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestBatchAnalyzer_LogsSummary(t *testing.T) {
	client := &mockHTTPClient{postFunc: respond(200, `{"prediction":"Fake","confidence":0.9,"fake_probability":0.9,"real_probability":0.1}`)}
	news := NewNewsService(interfaces.Dependencies{HTTPClient: client}, Options{BackendURL: "http://backend"})

	logger := &mockLogger{}
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", "Batch analysis completed", map[string]interface{}{
		"total":  2,
		"fake":   2,
		"failed": 0,
	}).Once()

	_, err := NewBatchAnalyzer(news, 2, logger).Analyze(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	logger.AssertExpectations(t)
	logger.AssertNotCalled(t, "Error", mock.Anything, mock.Anything)
}

func TestBatchAnalyzer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &mockHTTPClient{postFunc: func(ctx context.Context, _, _ string, _ io.Reader) (interfaces.Response, error) {
		return nil, ctx.Err()
	}}
	news := NewNewsService(interfaces.Dependencies{HTTPClient: client}, Options{BackendURL: "http://backend"})

	_, err := NewBatchAnalyzer(news, 2, nil).Analyze(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats_Record(t *testing.T) {
	stats := &Stats{}
	stats.Record(&domain.NewsReport{Prediction: "Fake"})
	stats.Record(&domain.NewsReport{Prediction: "Real"})
	stats.Record(&domain.DeepfakeReport{Prediction: "Fake"})
	stats.Record(&domain.Failure{Message: "x"})

	snap := stats.Snapshot()
	assert.Equal(t, int64(3), snap.TotalChecks)
	assert.Equal(t, int64(2), snap.FakeDetected)
	assert.Equal(t, int64(2), snap.NewsChecks)
	assert.Equal(t, int64(1), snap.MediaChecks)
	assert.Equal(t, int64(1), snap.Failures)

	var nilStats *Stats
	assert.NotPanics(t, func() { nilStats.Record(&domain.Failure{}) })
	assert.Zero(t, nilStats.Snapshot().TotalChecks)
}
