package interfaces

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
)

type FrameworkRepository interface {
	// Create creates a new framework with auto-generated ID
	Create(ctx context.Context, framework *model.Framework) (*model.Framework, error)

	// Get retrieves a framework by ID
	Get(ctx context.Context, id int64) (*model.Framework, error)

	// List retrieves all frameworks
	List(ctx context.Context) ([]*model.Framework, error)

	// Update updates an existing framework
	Update(ctx context.Context, framework *model.Framework) (*model.Framework, error)

	// Delete deletes a framework by ID
	Delete(ctx context.Context, id int64) error
}
