package risk

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// ResidualMethodologyPrefix tags scores computed from residual ratings.
const ResidualMethodologyPrefix = "residual_"

// Residual re-scores the risk with its residual likelihood and impact in
// place of the inherent ratings. When either residual rating is missing it
// delegates to the inherent assessment unchanged, without the residual tag.
func (s *Scorer) Residual(ctx context.Context, risk *model.Risk, method types.Methodology, opts ...AssessOption) (*model.RiskScore, error) {
	if risk == nil || !risk.HasResidualRatings() {
		return s.Assess(ctx, risk, method, opts...)
	}

	residual := *risk
	residual.InherentLikelihood = risk.ResidualLikelihood
	residual.InherentImpact = risk.ResidualImpact

	score, err := s.Assess(ctx, &residual, method, opts...)
	if err != nil {
		return nil, err
	}

	score.Methodology = ResidualMethodologyPrefix + score.Methodology
	return score, nil
}
