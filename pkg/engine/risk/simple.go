package risk

import (
	"slices"

	"github.com/secmon-lab/briareus/pkg/domain/model"
)

// simpleMultiplication computes overall = likelihood x impact. Both
// components live in [0.1,10]; the product is deliberately not normalized,
// so its range is [0.01,100].
func (s *Scorer) simpleMultiplication(risk *model.Risk, rctx *model.RiskContext, details map[string]any) (likelihood, impact, overall float64) {
	likelihood = s.likelihoodComponent(risk, details)
	impact = s.impactComponent(risk, details)

	if rctx != nil {
		m := s.contextMultiplier(rctx)
		likelihood = clampComponent(likelihood * m)
		impact = clampComponent(impact * m)
		details["context_multiplier"] = m
	}

	overall = likelihood * impact
	details["likelihood_score"] = likelihood
	details["impact_score"] = impact
	return likelihood, impact, overall
}

// likelihoodComponent converts the qualitative rating to a 0-10 score and
// adjusts it by incident history and trend.
func (s *Scorer) likelihoodComponent(risk *model.Risk, details map[string]any) float64 {
	probability := s.cfg.LikelihoodScale[risk.InherentLikelihood]
	score := probability * 10

	incidentFactor := 1.0
	switch {
	case risk.IncidentCount > 3:
		incidentFactor = 1.2
	case risk.IncidentCount > 0:
		incidentFactor = 1.1
	}

	trendFactor := 1.0
	switch risk.Trend {
	case "increasing":
		trendFactor = 1.15
	case "decreasing":
		trendFactor = 0.9
	}

	details["typical_probability"] = probability
	details["incident_factor"] = incidentFactor
	details["trend_factor"] = trendFactor

	return clampComponent(score * incidentFactor * trendFactor)
}

// impactComponent converts the qualitative rating to a 0-10 score and
// adjusts it by business criticality and dependency footprint.
func (s *Scorer) impactComponent(risk *model.Risk, details map[string]any) float64 {
	score := s.cfg.ImpactScale[risk.InherentImpact]

	businessFactor := 1.0
	if slices.Contains(s.cfg.OperationsCriticalUnits, risk.BusinessUnit) {
		businessFactor = 1.15
	}

	dependencyFactor := 1.0
	deps := len(risk.AffectedAssets) + len(risk.ExternalDependencies)
	switch {
	case deps > 5:
		dependencyFactor = 1.2
	case deps > 2:
		dependencyFactor = 1.1
	}

	details["typical_impact"] = score
	details["business_factor"] = businessFactor
	details["dependency_factor"] = dependencyFactor

	return clampComponent(score * businessFactor * dependencyFactor)
}

// contextMultiplier combines the business context factors into a single
// multiplier. The factors are independent, so application order does not
// matter.
func (s *Scorer) contextMultiplier(rctx *model.RiskContext) float64 {
	m := 1.0

	if factor, ok := s.cfg.IndustryFactors[rctx.IndustrySector]; ok {
		m *= factor
	}

	switch {
	case len(rctx.RegulatoryEnvironment) >= 3:
		m *= 1.15
	case len(rctx.RegulatoryEnvironment) >= 1:
		m *= 1.05
	}

	switch rctx.MarketConditions {
	case "volatile":
		m *= 1.1
	case "favorable":
		m *= 0.95
	}

	switch rctx.RiskAppetite {
	case "low", "averse":
		m *= 1.15
	case "high", "aggressive":
		m *= 0.9
	}

	return m
}
