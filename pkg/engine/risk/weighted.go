package risk

import (
	"slices"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// reputationSensitiveCategories amplify reputational impact regardless of
// the inherent impact rating.
var reputationSensitiveCategories = []types.RiskCategory{
	types.RiskCategorySecurity,
	types.RiskCategoryCompliance,
	types.RiskCategoryEnvironmental,
	types.RiskCategoryLegal,
}

// weightedAverage blends likelihood with four impact dimensions. All
// components are on a 0-10 scale, so the overall score stays within 0-10.
func (s *Scorer) weightedAverage(risk *model.Risk, rctx *model.RiskContext, details map[string]any) (likelihood, impact, overall float64) {
	likelihood = s.likelihoodComponent(risk, details)
	if rctx != nil {
		m := s.contextMultiplier(rctx)
		likelihood = clampComponent(likelihood * m)
		details["context_multiplier"] = m
	}

	financial := s.financialComponent(risk)
	operational := s.operationalComponent(risk)
	reputational := s.reputationalComponent(risk)
	compliance := s.complianceComponent(risk)

	w := s.cfg.RiskWeights
	overall = likelihood*w.Likelihood +
		financial*w.Financial +
		operational*w.Operational +
		reputational*w.Reputational +
		compliance*w.Compliance

	// Report the weighted impact blend as the impact component.
	impactWeight := w.Financial + w.Operational + w.Reputational + w.Compliance
	impact = (financial*w.Financial + operational*w.Operational + reputational*w.Reputational + compliance*w.Compliance) / impactWeight

	details["likelihood_score"] = likelihood
	details["financial_impact_score"] = financial
	details["operational_impact_score"] = operational
	details["reputational_impact_score"] = reputational
	details["compliance_impact_score"] = compliance

	return likelihood, impact, overall
}

// financialComponent tiers the estimated financial impact by absolute
// dollar thresholds. Without financial data it falls back to the typical
// impact score of the qualitative rating.
func (s *Scorer) financialComponent(risk *model.Risk) float64 {
	if !risk.HasFinancialData() {
		return s.cfg.ImpactScale[risk.InherentImpact]
	}

	amount := (*risk.FinancialImpactMin + *risk.FinancialImpactMax) / 2
	switch {
	case amount < 10_000:
		return 2
	case amount < 100_000:
		return 4
	case amount < 1_000_000:
		return 6
	case amount < 10_000_000:
		return 8
	default:
		return 10
	}
}

func (s *Scorer) operationalComponent(risk *model.Risk) float64 {
	score := s.cfg.ImpactScale[risk.InherentImpact]
	if slices.Contains(s.cfg.OperationsCriticalUnits, risk.BusinessUnit) {
		score *= 1.3
	}
	if slices.Contains(s.cfg.CoreProcessAreas, risk.ProcessArea) {
		score *= 1.2
	}
	return min(score, 10)
}

func (s *Scorer) reputationalComponent(risk *model.Risk) float64 {
	score := s.cfg.ImpactScale[risk.InherentImpact]
	if slices.Contains(reputationSensitiveCategories, risk.Category) {
		score *= 1.4
	}
	score *= geographicMultiplier(risk.GeographicScope)
	return min(score, 10)
}

func (s *Scorer) complianceComponent(risk *model.Risk) float64 {
	score := s.cfg.ImpactScale[risk.InherentImpact]
	switch {
	case len(risk.RegulatoryRequirements) >= 3:
		score *= 1.5
	case len(risk.RegulatoryRequirements) >= 1:
		score *= 1.2
	}
	if risk.Category == types.RiskCategoryCompliance {
		score *= 1.6
	}
	return min(score, 10)
}

func geographicMultiplier(scope types.GeographicScope) float64 {
	switch scope {
	case types.ScopeRegional:
		return 1.1
	case types.ScopeNational:
		return 1.2
	case types.ScopeGlobal:
		return 1.3
	default:
		return 1.0
	}
}
