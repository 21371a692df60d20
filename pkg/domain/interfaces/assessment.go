package interfaces

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
)

type AssessmentRepository interface {
	// Create stores a completed assessment with auto-generated ID
	Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id int64) (*model.Assessment, error)

	// ListByFramework retrieves all assessments of a framework, newest first
	ListByFramework(ctx context.Context, frameworkID int64) ([]*model.Assessment, error)

	// Latest retrieves the most recent assessment of a framework
	Latest(ctx context.Context, frameworkID int64) (*model.Assessment, error)
}
