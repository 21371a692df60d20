package config

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// RiskWeights are the component weights of the weighted average methodology.
// They must sum to 1.0.
type RiskWeights struct {
	Likelihood   float64
	Financial    float64
	Operational  float64
	Reputational float64
	Compliance   float64
}

// ComplianceWeights are the component weights of the per-control compliance
// score. DocumentationBase is a fixed additive term, not a multiplier.
type ComplianceWeights struct {
	Implementation    float64
	Effectiveness     float64
	Maturity          float64
	DocumentationBase float64
}

// MaturityCriteria defines the minimum scores a control must reach in each
// dimension to qualify for a maturity level. Implementation and
// Documentation are in [0,1]; Testing is 0 or 1.
type MaturityCriteria struct {
	Level          int
	Implementation float64
	Documentation  float64
	Testing        float64
}

// PriorityThreshold maps the lower bound of a score range to a priority
// tier. Ranges are contiguous; a score belongs to the highest tier whose
// Min it reaches, so any score at or above the critical bound classifies
// as critical regardless of the methodology's upper scale.
type PriorityThreshold struct {
	Priority types.Priority
	Min      float64
}

// ScoringConfig carries every tunable constant of the risk and compliance
// scoring engines. Callers construct one per tenant or test run; the
// engines never consult package-level state.
type ScoringConfig struct {
	// Risk scoring
	LikelihoodScale    map[types.Likelihood]float64 // typical annual probability [0,1]
	ImpactScale        map[types.Impact]float64     // typical impact score [0,10]
	PriorityThresholds []PriorityThreshold
	RiskWeights        RiskWeights
	IndustryFactors    map[string]float64

	// OperationsCriticalUnits and CoreProcessAreas drive the operational
	// impact multipliers of the weighted average methodology.
	OperationsCriticalUnits []string
	CoreProcessAreas        []string

	// MaxAcceptableLoss is the annual loss (in dollars) that maps to a
	// financial score of 10 under the quantitative methodology.
	MaxAcceptableLoss float64

	// Compliance scoring
	ComplianceWeights       ComplianceWeights
	MaturityCriteria        []MaturityCriteria
	MethodConfidence        map[types.AssessmentMethod]float64
	AutomatedTestingEnabled bool

	// Gap analysis
	TargetMaturity        int
	RemediationDailyRate  float64
	QuarterlyCapacityDays float64
}

// Default returns the baseline scoring configuration.
func Default() *ScoringConfig {
	return &ScoringConfig{
		LikelihoodScale: map[types.Likelihood]float64{
			types.LikelihoodVeryLow:  0.05,
			types.LikelihoodLow:      0.25,
			types.LikelihoodMedium:   0.45,
			types.LikelihoodHigh:     0.65,
			types.LikelihoodVeryHigh: 0.85,
			types.LikelihoodCertain:  0.95,
		},
		ImpactScale: map[types.Impact]float64{
			types.ImpactNegligible: 1.0,
			types.ImpactMinor:      3.0,
			types.ImpactModerate:   5.0,
			types.ImpactMajor:      7.0,
			types.ImpactSevere:     9.0,
		},
		PriorityThresholds: []PriorityThreshold{
			{Priority: types.PriorityLow, Min: 0},
			{Priority: types.PriorityMedium, Min: 2.5},
			{Priority: types.PriorityHigh, Min: 5.0},
			{Priority: types.PriorityCritical, Min: 7.5},
		},
		RiskWeights: RiskWeights{
			Likelihood:   0.40,
			Financial:    0.25,
			Operational:  0.15,
			Reputational: 0.10,
			Compliance:   0.10,
		},
		IndustryFactors: map[string]float64{
			"financial_services": 1.20,
			"healthcare":         1.15,
			"energy":             1.10,
			"government":         1.10,
			"technology":         1.05,
			"manufacturing":      0.95,
			"retail":             1.00,
		},
		OperationsCriticalUnits: []string{"operations", "manufacturing", "logistics", "it_operations"},
		CoreProcessAreas:        []string{"core_business", "production", "payments", "order_fulfillment"},
		MaxAcceptableLoss:       10_000_000,
		ComplianceWeights: ComplianceWeights{
			Implementation:    0.40,
			Effectiveness:     0.30,
			Maturity:          0.20,
			DocumentationBase: 0.08,
		},
		MaturityCriteria: []MaturityCriteria{
			{Level: 1, Implementation: 0.00, Documentation: 0.00, Testing: 0},
			{Level: 2, Implementation: 0.30, Documentation: 0.20, Testing: 0},
			{Level: 3, Implementation: 0.60, Documentation: 0.50, Testing: 0},
			{Level: 4, Implementation: 0.80, Documentation: 0.70, Testing: 1},
			{Level: 5, Implementation: 0.95, Documentation: 0.90, Testing: 1},
		},
		MethodConfidence: map[types.AssessmentMethod]float64{
			types.MethodAutomatedTesting:        0.9,
			types.MethodTechnicalTesting:        0.8,
			types.MethodPhysicalInspection:      0.7,
			types.MethodDocumentReview:          0.6,
			types.MethodInterviewAndObservation: 0.5,
		},
		AutomatedTestingEnabled: true,
		TargetMaturity:          4,
		RemediationDailyRate:    800,
		QuarterlyCapacityDays:   120,
	}
}

// Validate checks internal consistency of the configuration.
func (c *ScoringConfig) Validate() error {
	for _, l := range types.AllLikelihoods() {
		p, ok := c.LikelihoodScale[l]
		if !ok {
			return goerr.New("likelihood scale is missing a rating", goerr.V("likelihood", l))
		}
		if p < 0 || p > 1 {
			return goerr.New("likelihood probability must be in [0,1]", goerr.V("likelihood", l), goerr.V("probability", p))
		}
	}

	for _, i := range types.AllImpacts() {
		s, ok := c.ImpactScale[i]
		if !ok {
			return goerr.New("impact scale is missing a rating", goerr.V("impact", i))
		}
		if s < 0 || s > 10 {
			return goerr.New("impact score must be in [0,10]", goerr.V("impact", i), goerr.V("score", s))
		}
	}

	if len(c.PriorityThresholds) == 0 {
		return goerr.New("priority thresholds must not be empty")
	}
	if c.PriorityThresholds[0].Min != 0 {
		return goerr.New("first priority threshold must start at 0", goerr.V("min", c.PriorityThresholds[0].Min))
	}
	for i := 1; i < len(c.PriorityThresholds); i++ {
		if c.PriorityThresholds[i].Min <= c.PriorityThresholds[i-1].Min {
			return goerr.New("priority thresholds must be strictly increasing",
				goerr.V("priority", c.PriorityThresholds[i].Priority),
				goerr.V("min", c.PriorityThresholds[i].Min))
		}
	}

	w := c.RiskWeights
	sum := w.Likelihood + w.Financial + w.Operational + w.Reputational + w.Compliance
	if math.Abs(sum-1.0) > 1e-9 {
		return goerr.New("risk weights must sum to 1.0", goerr.V("sum", sum))
	}

	if len(c.MaturityCriteria) == 0 {
		return goerr.New("maturity criteria must not be empty")
	}
	for i, mc := range c.MaturityCriteria {
		if mc.Level != i+1 {
			return goerr.New("maturity criteria levels must be numbered 1..N in order",
				goerr.V("index", i), goerr.V("level", mc.Level))
		}
		if i == 0 {
			continue
		}
		prev := c.MaturityCriteria[i-1]
		if mc.Implementation < prev.Implementation || mc.Documentation < prev.Documentation || mc.Testing < prev.Testing {
			return goerr.New("maturity criteria must be monotonically non-decreasing",
				goerr.V("level", mc.Level))
		}
	}

	if c.MaxAcceptableLoss <= 0 {
		return goerr.New("max acceptable loss must be positive", goerr.V("value", c.MaxAcceptableLoss))
	}
	if c.RemediationDailyRate <= 0 {
		return goerr.New("remediation daily rate must be positive", goerr.V("value", c.RemediationDailyRate))
	}
	if c.QuarterlyCapacityDays <= 0 {
		return goerr.New("quarterly capacity must be positive", goerr.V("value", c.QuarterlyCapacityDays))
	}
	if c.TargetMaturity < 1 || c.TargetMaturity > len(c.MaturityCriteria) {
		return goerr.New("target maturity out of range", goerr.V("value", c.TargetMaturity))
	}

	return nil
}
