package risk

import (
	"math"

	"github.com/secmon-lab/briareus/pkg/domain/model"
)

// quantitative derives the score from the expected annual loss. Callers
// must verify financial data is present; Assess falls back to simple
// multiplication otherwise.
func (s *Scorer) quantitative(risk *model.Risk, rctx *model.RiskContext, details map[string]any) (likelihood, impact, overall float64) {
	likelihood = s.likelihoodComponent(risk, details)
	if rctx != nil {
		m := s.contextMultiplier(rctx)
		likelihood = clampComponent(likelihood * m)
		details["context_multiplier"] = m
	}

	probability := s.cfg.LikelihoodScale[risk.InherentLikelihood]
	expectedLoss := (*risk.FinancialImpactMin + *risk.FinancialImpactMax) / 2 * probability

	financialScore := min(10, expectedLoss/s.cfg.MaxAcceptableLoss*10)
	overall = math.Sqrt(financialScore * likelihood)

	details["expected_annual_loss"] = expectedLoss
	details["max_acceptable_loss"] = s.cfg.MaxAcceptableLoss
	details["financial_score"] = financialScore
	details["likelihood_score"] = likelihood

	return likelihood, financialScore, overall
}
