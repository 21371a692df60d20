package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
)

type frameworkRepository struct {
	mu         sync.RWMutex
	frameworks map[int64]*model.Framework
	nextID     int64
}

func newFrameworkRepository() *frameworkRepository {
	return &frameworkRepository{
		frameworks: make(map[int64]*model.Framework),
		nextID:     1,
	}
}

func (r *frameworkRepository) Create(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *framework
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.frameworks[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *frameworkRepository) Get(ctx context.Context, id int64) (*model.Framework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	framework, exists := r.frameworks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", id))
	}

	copied := *framework
	return &copied, nil
}

func (r *frameworkRepository) List(ctx context.Context) ([]*model.Framework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	frameworks := make([]*model.Framework, 0, len(r.frameworks))
	for _, framework := range r.frameworks {
		copied := *framework
		frameworks = append(frameworks, &copied)
	}

	return frameworks, nil
}

func (r *frameworkRepository) Update(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.frameworks[framework.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", framework.ID))
	}

	updated := *framework
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.frameworks[updated.ID] = &updated

	copied := updated
	return &copied, nil
}

func (r *frameworkRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.frameworks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", id))
	}

	delete(r.frameworks, id)
	return nil
}
