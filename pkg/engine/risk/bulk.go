package risk

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

// bulkConcurrency bounds the number of concurrent assessments in a batch.
const bulkConcurrency = 8

// BulkAssess scores independent risks concurrently. A failure or panic on
// one risk never aborts the batch; the result map always contains an entry
// per input, with failures carrying an error message instead of a score.
func (s *Scorer) BulkAssess(ctx context.Context, risks []*model.Risk, method types.Methodology, opts ...AssessOption) map[int64]model.BulkScoreResult {
	results := make(map[int64]model.BulkScoreResult, len(risks))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(bulkConcurrency)

	for _, risk := range risks {
		eg.Go(func() error {
			result := s.assessOne(ctx, risk, method, opts...)

			mu.Lock()
			defer mu.Unlock()
			if risk != nil {
				results[risk.ID] = result
			}
			return nil
		})
	}

	// Goroutines never return errors; failures are captured per item.
	_ = eg.Wait()

	return results
}

func (s *Scorer) assessOne(ctx context.Context, risk *model.Risk, method types.Methodology, opts ...AssessOption) (result model.BulkScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("panic while assessing risk in batch", "panic", r)
			result = model.BulkScoreResult{Error: fmt.Sprintf("assessment panic: %v", r)}
		}
	}()

	if risk == nil {
		return model.BulkScoreResult{Error: "risk not found"}
	}

	score, err := s.Assess(ctx, risk, method, opts...)
	if err != nil {
		return model.BulkScoreResult{Error: err.Error()}
	}
	return model.BulkScoreResult{Score: score}
}
