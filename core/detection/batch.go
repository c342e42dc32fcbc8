// ABOUTME: Batch news analysis over the news submitter
// ABOUTME: Fans out with bounded concurrency and aggregates fake and real counts

package detection

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"mediacheck/core/domain"
	"mediacheck/core/errors"
	"mediacheck/core/interfaces"
)

const defaultBatchConcurrency = 4

// BatchAnalyzer runs many text analyses through a NewsSubmitter
type BatchAnalyzer struct {
	submitter   interfaces.NewsSubmitter
	concurrency int
	logger      interfaces.Logger
}

// NewBatchAnalyzer creates a batch analyzer running at most concurrency requests at once
func NewBatchAnalyzer(submitter interfaces.NewsSubmitter, concurrency int, logger interfaces.Logger) *BatchAnalyzer {
	if concurrency < 1 {
		concurrency = defaultBatchConcurrency
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &BatchAnalyzer{
		submitter:   submitter,
		concurrency: concurrency,
		logger:      logger,
	}
}

type batchInput struct {
	index int
	text  string
}

// Analyze submits every non-blank text with the default method. Items keep the position of
// their text in texts. Per-article failures are counted in the summary; only a cancelled
// context aborts the batch.
func (b *BatchAnalyzer) Analyze(ctx context.Context, texts []string) (*domain.BatchSummary, error) {
	var inputs []batchInput
	for i, text := range texts {
		if strings.TrimSpace(text) != "" {
			inputs = append(inputs, batchInput{index: i, text: text})
		}
	}
	if len(inputs) == 0 {
		return nil, &errors.ValidationError{Field: "articles", Message: domain.MsgNoArticles}
	}

	items := make([]domain.BatchItem, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			item := domain.BatchItem{Index: in.index}
			outcome, err := b.submitter.Submit(gctx, domain.NewTextRequest(in.text, domain.DefaultMethod))
			if err != nil {
				if !errors.IsValidation(err) {
					return err
				}
				item.Error = errors.UserMessage(err)
			}

			switch o := outcome.(type) {
			case *domain.NewsReport:
				item.Report = o
			case *domain.Failure:
				item.Error = o.Message
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := domain.Summarize(items)
	b.logger.Info("Batch analysis completed", map[string]interface{}{
		"total":  summary.TotalArticles,
		"fake":   summary.FakeArticles,
		"failed": summary.FailedArticles,
	})
	return summary, nil
}
