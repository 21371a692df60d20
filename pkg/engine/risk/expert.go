package risk

import (
	"github.com/secmon-lab/briareus/pkg/domain/model"
)

// expertJudgment adjusts the simple multiplication components by a
// confidence factor in [0.8,1.2] derived from the prior assessment's
// assessor quality and completeness.
func (s *Scorer) expertJudgment(risk *model.Risk, rctx *model.RiskContext, judgment *model.ExpertJudgment, details map[string]any) (likelihood, impact, overall float64) {
	likelihood = s.likelihoodComponent(risk, details)
	impact = s.impactComponent(risk, details)

	if rctx != nil {
		m := s.contextMultiplier(rctx)
		likelihood = clampComponent(likelihood * m)
		impact = clampComponent(impact * m)
		details["context_multiplier"] = m
	}

	adjustment := confidenceAdjustment(judgment)
	likelihood = clampComponent(likelihood * adjustment)
	impact = clampComponent(impact * adjustment)
	overall = likelihood * impact

	details["confidence_adjustment"] = adjustment
	details["assessor_quality"] = judgment.AssessorQuality
	details["likelihood_score"] = likelihood
	details["impact_score"] = impact

	return likelihood, impact, overall
}

// confidenceAdjustment maps the judgment record to [0.8,1.2]. Completeness
// grants 0.2 per present element (rationale, criteria, data sources,
// validation, assessor quality); it is averaged with the quality score and
// the average is scaled into the adjustment band.
func confidenceAdjustment(j *model.ExpertJudgment) float64 {
	completeness := 0.0
	if j.Rationale != "" {
		completeness += 0.2
	}
	if len(j.Criteria) > 0 {
		completeness += 0.2
	}
	if len(j.DataSources) > 0 {
		completeness += 0.2
	}
	if j.Validated {
		completeness += 0.2
	}
	if j.AssessorQuality > 0 {
		completeness += 0.2
	}

	quality := j.AssessorQuality
	if quality < 0 {
		quality = 0
	}
	if quality > 1 {
		quality = 1
	}

	return 0.8 + 0.4*(quality+completeness)/2
}
