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

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[int64]*model.Assessment
	nextID      int64
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[int64]*model.Assessment),
		nextID:      1,
	}
}

// copyAssessment creates a deep copy of an assessment entry
func copyAssessment(a *model.Assessment) *model.Assessment {
	copied := *a
	copied.Scope = slices.Clone(a.Scope)
	copied.ControlAssessments = slices.Clone(a.ControlAssessments)
	copied.Findings = slices.Clone(a.Findings)
	if a.FindingsBySeverity != nil {
		copied.FindingsBySeverity = maps.Clone(a.FindingsBySeverity)
	}
	return &copied
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAssessment(assessment)
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	for i := range created.Findings {
		created.Findings[i].AssessmentID = created.ID
	}
	r.nextID++

	r.assessments[created.ID] = created
	return copyAssessment(created), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id int64) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	return copyAssessment(assessment), nil
}

func (r *assessmentRepository) ListByFramework(ctx context.Context, frameworkID int64) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var assessments []*model.Assessment
	for _, a := range r.assessments {
		if a.FrameworkID != frameworkID {
			continue
		}
		assessments = append(assessments, copyAssessment(a))
	}

	// Newest first
	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].ConductedAt.After(assessments[j].ConductedAt)
	})

	return assessments, nil
}

func (r *assessmentRepository) Latest(ctx context.Context, frameworkID int64) (*model.Assessment, error) {
	assessments, err := r.ListByFramework(ctx, frameworkID)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "no assessment recorded for framework", goerr.V("frameworkID", frameworkID))
	}
	return assessments[0], nil
}
