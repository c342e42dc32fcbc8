// ABOUTME: Mappers for converting detection results to API DTOs
// ABOUTME: Keeps the JSON API independent of the domain's ordered feature type

package mappers

import (
	"github.com/jinzhu/copier"

	"mediacheck/api/dto/responses"
	"mediacheck/core/detection"
	"mediacheck/core/domain"
)

// ToNewsReportResponse converts a domain NewsReport to its DTO
func ToNewsReportResponse(report *domain.NewsReport) *responses.NewsReportResponse {
	if report == nil {
		return nil
	}

	resp := &responses.NewsReportResponse{}
	// Same-named fields map one to one; features are flattened below
	_ = copier.Copy(resp, report)
	resp.LinguisticFeatures = ToFeatureMap(report.LinguisticFeatures)
	return resp
}

// ToFeatureMap flattens linguistic features into a JSON object. Numeric values stay numbers.
func ToFeatureMap(features domain.LinguisticFeatures) map[string]interface{} {
	if features == nil {
		return nil
	}

	out := make(map[string]interface{}, len(features))
	for _, f := range features {
		if f.Value.Numeric {
			out[f.Key] = f.Value.Number
		} else {
			out[f.Key] = f.Value.Text
		}
	}
	return out
}

// ToBatchAnalyzeResponse converts a batch summary to its DTO
func ToBatchAnalyzeResponse(summary *domain.BatchSummary) *responses.BatchAnalyzeResponse {
	if summary == nil {
		return nil
	}

	resp := &responses.BatchAnalyzeResponse{
		TotalArticles:  summary.TotalArticles,
		FakeArticles:   summary.FakeArticles,
		RealArticles:   summary.RealArticles,
		FailedArticles: summary.FailedArticles,
		FakePercentage: summary.FakePercentage,
		Details:        make([]responses.BatchItemResponse, 0, len(summary.Items)),
	}

	for _, item := range summary.Items {
		resp.Details = append(resp.Details, responses.BatchItemResponse{
			Index:  item.Index,
			Result: ToNewsReportResponse(item.Report),
			Error:  item.Error,
		})
	}
	return resp
}

// ToStatsResponse converts a stats snapshot to its DTO
func ToStatsResponse(snap detection.StatsSnapshot) responses.StatsResponse {
	var resp responses.StatsResponse
	_ = copier.Copy(&resp, &snap)
	return resp
}
