package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
)

type scoreRepository struct {
	mu        sync.RWMutex
	scores    map[int64][]*model.RiskScore
	judgments map[int64]*model.ExpertJudgment
	nextID    int64
}

func newScoreRepository() *scoreRepository {
	return &scoreRepository{
		scores:    make(map[int64][]*model.RiskScore),
		judgments: make(map[int64]*model.ExpertJudgment),
		nextID:    1,
	}
}

// copyScore creates a deep copy of a score entry
func copyScore(s *model.RiskScore) *model.RiskScore {
	copied := *s
	if s.CalculationDetails != nil {
		copied.CalculationDetails = maps.Clone(s.CalculationDetails)
	}
	return &copied
}

func copyJudgment(j *model.ExpertJudgment) *model.ExpertJudgment {
	copied := *j
	copied.Criteria = slices.Clone(j.Criteria)
	copied.DataSources = slices.Clone(j.DataSources)
	return &copied
}

func (r *scoreRepository) Put(ctx context.Context, score *model.RiskScore) (*model.RiskScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyScore(score)
	created.ID = r.nextID
	if created.AssessedAt.IsZero() {
		created.AssessedAt = time.Now().UTC()
	}
	r.nextID++

	r.scores[created.RiskID] = append(r.scores[created.RiskID], created)
	return copyScore(created), nil
}

func (r *scoreRepository) List(ctx context.Context, riskID int64) ([]*model.RiskScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.scores[riskID]
	scores := make([]*model.RiskScore, 0, len(history))
	for _, s := range history {
		scores = append(scores, copyScore(s))
	}

	// Newest first
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].AssessedAt.After(scores[j].AssessedAt)
	})

	return scores, nil
}

func (r *scoreRepository) Latest(ctx context.Context, riskID int64) (*model.RiskScore, error) {
	scores, err := r.List(ctx, riskID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "no score recorded for risk", goerr.V("riskID", riskID))
	}
	return scores[0], nil
}

func (r *scoreRepository) PutJudgment(ctx context.Context, judgment *model.ExpertJudgment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.judgments[judgment.RiskID] = copyJudgment(judgment)
	return nil
}

func (r *scoreRepository) GetJudgment(ctx context.Context, riskID int64) (*model.ExpertJudgment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	judgment, exists := r.judgments[riskID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "expert judgment not found", goerr.V("riskID", riskID))
	}

	return copyJudgment(judgment), nil
}
