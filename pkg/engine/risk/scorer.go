package risk

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

// Scorer computes risk scores from risk records. It is stateless with
// respect to shared mutable state; all tunables come from the scoring
// configuration supplied at construction.
type Scorer struct {
	cfg *config.ScoringConfig
}

// New creates a Scorer with the given configuration.
func New(cfg *config.ScoringConfig) *Scorer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Scorer{cfg: cfg}
}

type assessOptions struct {
	businessCtx *model.RiskContext
	judgment    *model.ExpertJudgment
}

// AssessOption modifies a single assessment call.
type AssessOption func(*assessOptions)

// WithBusinessContext supplies optional business context. The context only
// modifies scoring; the risk record is never mutated.
func WithBusinessContext(rctx *model.RiskContext) AssessOption {
	return func(o *assessOptions) {
		o.businessCtx = rctx
	}
}

// WithExpertJudgment supplies the latest prior expert assessment, required
// by the expert judgment methodology.
func WithExpertJudgment(j *model.ExpertJudgment) AssessOption {
	return func(o *assessOptions) {
		o.judgment = j
	}
}

// Assess scores a risk using the requested methodology. Methodologies that
// cannot be applied (monte carlo, quantitative without financial data,
// expert judgment without a prior assessment) fall back to simple
// multiplication with FallbackReason set on the result.
func (s *Scorer) Assess(ctx context.Context, risk *model.Risk, method types.Methodology, opts ...AssessOption) (*model.RiskScore, error) {
	if risk == nil {
		return nil, goerr.New("risk is required")
	}
	if !method.IsValid() {
		return nil, goerr.New("unsupported assessment methodology", goerr.V("methodology", method))
	}
	if err := validateRatings(risk); err != nil {
		return nil, err
	}

	var o assessOptions
	for _, opt := range opts {
		opt(&o)
	}

	details := map[string]any{
		"inherent_likelihood": risk.InherentLikelihood.String(),
		"inherent_impact":     risk.InherentImpact.String(),
		"category":            risk.Category.String(),
	}

	var likelihood, impact, overall float64
	used := method
	var fallback string

	switch method {
	case types.MethodologySimpleMultiplication:
		likelihood, impact, overall = s.simpleMultiplication(risk, o.businessCtx, details)

	case types.MethodologyWeightedAverage:
		likelihood, impact, overall = s.weightedAverage(risk, o.businessCtx, details)

	case types.MethodologyQuantitative:
		if !risk.HasFinancialData() {
			fallback = "financial impact range not set"
			used = types.MethodologySimpleMultiplication
			likelihood, impact, overall = s.simpleMultiplication(risk, o.businessCtx, details)
		} else {
			likelihood, impact, overall = s.quantitative(risk, o.businessCtx, details)
		}

	case types.MethodologyExpertJudgment:
		if o.judgment == nil {
			fallback = "no prior expert assessment"
			used = types.MethodologySimpleMultiplication
			likelihood, impact, overall = s.simpleMultiplication(risk, o.businessCtx, details)
		} else {
			likelihood, impact, overall = s.expertJudgment(risk, o.businessCtx, o.judgment, details)
		}

	case types.MethodologyMonteCarlo:
		fallback = "monte carlo simulation not implemented"
		used = types.MethodologySimpleMultiplication
		likelihood, impact, overall = s.simpleMultiplication(risk, o.businessCtx, details)
	}

	if fallback != "" {
		logging.From(ctx).Warn("risk assessment fell back to simple multiplication",
			"risk_id", risk.ID,
			"requested", method.String(),
			"reason", fallback,
		)
	}

	return &model.RiskScore{
		RiskID:             risk.ID,
		LikelihoodScore:    likelihood,
		ImpactScore:        impact,
		OverallScore:       overall,
		Priority:           s.ClassifyPriority(overall),
		ConfidenceLevel:    s.confidence(risk, o.businessCtx),
		Methodology:        used.String(),
		FallbackReason:     fallback,
		CalculationDetails: details,
		AssessedAt:         time.Now().UTC(),
	}, nil
}

// ClassifyPriority maps an overall score to its priority tier. The tiers
// are lower-bound ranges, so a score above the top bound always classifies
// into the highest tier even when the methodology's scale exceeds 10.
func (s *Scorer) ClassifyPriority(score float64) types.Priority {
	thresholds := s.cfg.PriorityThresholds
	priority := thresholds[0].Priority
	for _, th := range thresholds {
		if score >= th.Min {
			priority = th.Priority
		}
	}
	return priority
}

func validateRatings(risk *model.Risk) error {
	if !risk.InherentLikelihood.IsValid() {
		return goerr.New("invalid inherent likelihood", goerr.V("likelihood", risk.InherentLikelihood))
	}
	if !risk.InherentImpact.IsValid() {
		return goerr.New("invalid inherent impact", goerr.V("impact", risk.InherentImpact))
	}
	if risk.HasFinancialData() && *risk.FinancialImpactMax < *risk.FinancialImpactMin {
		return goerr.New("financial impact max must be >= min",
			goerr.V("min", *risk.FinancialImpactMin),
			goerr.V("max", *risk.FinancialImpactMax))
	}
	return nil
}

// confidence is the mean of five independent [0,1] factors describing how
// much supporting data the assessment had.
func (s *Scorer) confidence(risk *model.Risk, rctx *model.RiskContext) float64 {
	description := 0.5
	if len(risk.Description) >= 50 {
		description = 0.8
	}

	review := 0.4
	if risk.LastReviewDate != nil {
		days := time.Since(*risk.LastReviewDate).Hours() / 24
		switch {
		case days < 90:
			review = 0.9
		case days < 180:
			review = 0.7
		default:
			review = 0.5
		}
	}

	financial := 0.6
	if risk.HasFinancialData() {
		financial = 0.8
	}

	controls := 0.5
	switch {
	case len(risk.ControlIDs) > 2:
		controls = 0.8
	case len(risk.ControlIDs) > 0:
		controls = 0.7
	}

	contextFactor := 0.6
	if rctx != nil {
		contextFactor = 0.8
	}

	return (description + review + financial + controls + contextFactor) / 5
}

func clampComponent(v float64) float64 {
	if v < 0.1 {
		return 0.1
	}
	if v > 10 {
		return 10
	}
	return v
}
