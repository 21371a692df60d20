package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
)

type controlRepository struct {
	mu             sync.RWMutex
	controls       map[int64]*model.Control
	evidence       map[int64][]*model.Evidence
	nextID         int64
	nextEvidenceID int64
}

func newControlRepository() *controlRepository {
	return &controlRepository{
		controls:       make(map[int64]*model.Control),
		evidence:       make(map[int64][]*model.Evidence),
		nextID:         1,
		nextEvidenceID: 1,
	}
}

func (r *controlRepository) Create(ctx context.Context, control *model.Control) (*model.Control, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *control
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.controls[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *controlRepository) Get(ctx context.Context, id int64) (*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	control, exists := r.controls[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
	}

	copied := *control
	return &copied, nil
}

func (r *controlRepository) ListByFramework(ctx context.Context, frameworkID int64) ([]*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var controls []*model.Control
	for _, control := range r.controls {
		if control.FrameworkID != frameworkID {
			continue
		}
		copied := *control
		controls = append(controls, &copied)
	}

	sort.Slice(controls, func(i, j int) bool {
		return controls[i].ControlID < controls[j].ControlID
	})

	return controls, nil
}

func (r *controlRepository) Update(ctx context.Context, control *model.Control) (*model.Control, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.controls[control.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", control.ID))
	}

	updated := *control
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.controls[updated.ID] = &updated

	copied := updated
	return &copied, nil
}

func (r *controlRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controls[id]; !exists {
		return goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
	}

	delete(r.controls, id)
	delete(r.evidence, id)
	return nil
}

func (r *controlRepository) AddEvidence(ctx context.Context, evidence *model.Evidence) (*model.Evidence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controls[evidence.ControlID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", evidence.ControlID))
	}

	created := *evidence
	created.ID = r.nextEvidenceID
	created.CreatedAt = time.Now().UTC()
	r.nextEvidenceID++

	r.evidence[created.ControlID] = append(r.evidence[created.ControlID], &created)

	copied := created
	return &copied, nil
}

func (r *controlRepository) ListEvidence(ctx context.Context, controlID int64) ([]*model.Evidence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.evidence[controlID]
	evidence := make([]*model.Evidence, 0, len(entries))
	for _, e := range entries {
		copied := *e
		evidence = append(evidence, &copied)
	}

	return evidence, nil
}
