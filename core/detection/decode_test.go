package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediacheck/core/domain"
)

func TestDecodeOutcome(t *testing.T) {
	const fallback = "Analysis failed"

	tests := []struct {
		name        string
		status      int
		body        string
		wantFailure string
	}{
		{"success", 200, `{"prediction":"Real","confidence":0.9}`, ""},
		{"error body on 400", 400, `{"error":"Please enter a URL to analyze"}`, "Please enter a URL to analyze"},
		{"error body on 200 wins", 200, `{"error":"model not loaded","prediction":"Real"}`, "model not loaded"},
		{"5xx without body", 500, ``, fallback},
		{"5xx with html", 502, `<html>Bad Gateway</html>`, fallback},
		{"4xx with empty error", 404, `{"error":""}`, fallback},
		{"non-string error", 500, `{"error":{"code":1}}`, fallback},
		{"2xx not json", 200, `OK`, fallback},
		{"2xx json array", 200, `[1,2]`, fallback},
		{"2xx null", 200, `null`, fallback},
		{"2xx wrong field types", 200, `{"confidence":"high"}`, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := decodeOutcome(tt.status, []byte(tt.body), &domain.NewsReport{}, fallback)

			if tt.wantFailure == "" {
				report, ok := outcome.(*domain.NewsReport)
				require.True(t, ok, "expected report, got %T", outcome)
				assert.Equal(t, "Real", report.Prediction)
				return
			}

			failure, ok := outcome.(*domain.Failure)
			require.True(t, ok, "expected failure, got %T", outcome)
			assert.Equal(t, tt.wantFailure, failure.Message)
		})
	}
}

func TestDecodeOutcome_MissingProbabilityIsZero(t *testing.T) {
	outcome := decodeOutcome(200, []byte(`{"prediction":"Real","file_type":"image"}`), &domain.DeepfakeReport{}, "x")

	report, ok := outcome.(*domain.DeepfakeReport)
	require.True(t, ok)
	assert.Zero(t, report.FakeProbability)
}

func TestReadResponse_RejectsOversizedBody(t *testing.T) {
	big := make([]byte, maxResponseBytes+10)
	for i := range big {
		big[i] = 'a'
	}

	_, err := readResponse(&mockResponse{statusCode: 200, body: string(big)})
	assert.Error(t, err)
}
