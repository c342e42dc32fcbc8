// ABOUTME: Batch analysis summary model
// ABOUTME: Aggregates per-article news outcomes into fake and real counts

package domain

// MsgNoArticles is returned when a batch has nothing to analyze.
const MsgNoArticles = "No articles provided"

// BatchItem is the outcome for one article of a batch.
type BatchItem struct {
	// Index is the position of the article in the submitted batch.
	Index  int
	Report *NewsReport
	Error  string
}

// BatchSummary aggregates the outcomes of a batch analysis.
type BatchSummary struct {
	TotalArticles  int
	FakeArticles   int
	RealArticles   int
	FailedArticles int
	FakePercentage float64
	Items          []BatchItem
}

// Summarize counts the items. Failed items count toward the total but neither fake nor real.
func Summarize(items []BatchItem) *BatchSummary {
	summary := &BatchSummary{
		TotalArticles: len(items),
		Items:         items,
	}

	for _, item := range items {
		switch {
		case item.Report == nil:
			summary.FailedArticles++
		case item.Report.IsFake():
			summary.FakeArticles++
		}
	}

	summary.RealArticles = summary.TotalArticles - summary.FakeArticles - summary.FailedArticles
	if summary.TotalArticles > 0 {
		summary.FakePercentage = float64(summary.FakeArticles) / float64(summary.TotalArticles) * 100
	}
	return summary
}
