package interfaces

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
)

// ScoreRepository persists risk score history and expert judgment records.
type ScoreRepository interface {
	// Put appends a score to the risk's assessment history
	Put(ctx context.Context, score *model.RiskScore) (*model.RiskScore, error)

	// List retrieves the score history of a risk, newest first
	List(ctx context.Context, riskID int64) ([]*model.RiskScore, error)

	// Latest retrieves the most recent score of a risk
	Latest(ctx context.Context, riskID int64) (*model.RiskScore, error)

	// PutJudgment stores the expert judgment record for a risk,
	// replacing any previous one
	PutJudgment(ctx context.Context, judgment *model.ExpertJudgment) error

	// GetJudgment retrieves the expert judgment record for a risk
	GetJudgment(ctx context.Context, riskID int64) (*model.ExpertJudgment, error)
}
