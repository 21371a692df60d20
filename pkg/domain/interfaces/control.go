package interfaces

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
)

type ControlRepository interface {
	// Create creates a new control with auto-generated ID
	Create(ctx context.Context, control *model.Control) (*model.Control, error)

	// Get retrieves a control by ID
	Get(ctx context.Context, id int64) (*model.Control, error)

	// ListByFramework retrieves all controls of a framework
	ListByFramework(ctx context.Context, frameworkID int64) ([]*model.Control, error)

	// Update updates an existing control
	Update(ctx context.Context, control *model.Control) (*model.Control, error)

	// Delete deletes a control by ID
	Delete(ctx context.Context, id int64) error

	// AddEvidence attaches a piece of evidence to a control
	AddEvidence(ctx context.Context, evidence *model.Evidence) (*model.Evidence, error)

	// ListEvidence retrieves all evidence attached to a control
	ListEvidence(ctx context.Context, controlID int64) ([]*model.Evidence, error)
}
