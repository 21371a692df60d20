package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Scoring holds CLI flags for scoring engine configuration
type Scoring struct {
	path string
}

// Flags returns CLI flags for scoring configuration
func (s *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "Path to a TOML file overriding scoring defaults",
			Sources:     cli.EnvVars("BRIAREUS_SCORING_CONFIG"),
			Destination: &s.path,
		},
	}
}

// Path returns the configured file path.
func (s *Scoring) Path() string {
	return s.path
}

// Configure returns the scoring configuration, applying TOML overrides on
// top of the defaults when a file is configured.
func (s *Scoring) Configure() (*domainConfig.ScoringConfig, error) {
	cfg := domainConfig.Default()
	if s.path == "" {
		return cfg, nil
	}

	overrides, err := LoadScoringOverrides(s.path)
	if err != nil {
		return nil, err
	}
	if err := overrides.Apply(cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to apply scoring overrides", goerr.V("path", s.path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "scoring config validation failed", goerr.V("path", s.path))
	}

	return cfg, nil
}

// ScoringOverrides is the TOML representation of scoring configuration
// overrides. Every field is optional; absent fields keep their defaults.
type ScoringOverrides struct {
	LikelihoodScale map[string]float64 `toml:"likelihood_scale"`
	ImpactScale     map[string]float64 `toml:"impact_scale"`

	RiskWeights *RiskWeightsOverride `toml:"risk_weights"`

	IndustryFactors         map[string]float64 `toml:"industry_factors"`
	OperationsCriticalUnits []string           `toml:"operations_critical_units"`
	CoreProcessAreas        []string           `toml:"core_process_areas"`
	MaxAcceptableLoss       *float64           `toml:"max_acceptable_loss"`

	ComplianceWeights       *ComplianceWeightsOverride `toml:"compliance_weights"`
	MethodConfidence        map[string]float64         `toml:"method_confidence"`
	AutomatedTestingEnabled *bool                      `toml:"automated_testing_enabled"`

	TargetMaturity        *int     `toml:"target_maturity"`
	RemediationDailyRate  *float64 `toml:"remediation_daily_rate"`
	QuarterlyCapacityDays *float64 `toml:"quarterly_capacity_days"`
}

// RiskWeightsOverride mirrors domain RiskWeights for TOML parsing.
type RiskWeightsOverride struct {
	Likelihood   float64 `toml:"likelihood"`
	Financial    float64 `toml:"financial"`
	Operational  float64 `toml:"operational"`
	Reputational float64 `toml:"reputational"`
	Compliance   float64 `toml:"compliance"`
}

// ComplianceWeightsOverride mirrors domain ComplianceWeights for TOML parsing.
type ComplianceWeightsOverride struct {
	Implementation    float64 `toml:"implementation"`
	Effectiveness     float64 `toml:"effectiveness"`
	Maturity          float64 `toml:"maturity"`
	DocumentationBase float64 `toml:"documentation_base"`
}

// LoadScoringOverrides loads scoring overrides from a TOML file
func LoadScoringOverrides(path string) (*ScoringOverrides, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scoring config file", goerr.V("path", path))
	}

	var overrides ScoringOverrides
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML scoring config", goerr.V("path", path))
	}

	return &overrides, nil
}

// Apply merges the overrides into cfg. Scale maps replace individual
// entries; unknown keys are rejected.
func (o *ScoringOverrides) Apply(cfg *domainConfig.ScoringConfig) error {
	for key, prob := range o.LikelihoodScale {
		l, err := types.ParseLikelihood(key)
		if err != nil {
			return goerr.Wrap(err, "invalid likelihood in scoring config")
		}
		cfg.LikelihoodScale[l] = prob
	}

	for key, score := range o.ImpactScale {
		i, err := types.ParseImpact(key)
		if err != nil {
			return goerr.Wrap(err, "invalid impact in scoring config")
		}
		cfg.ImpactScale[i] = score
	}

	if o.RiskWeights != nil {
		cfg.RiskWeights = domainConfig.RiskWeights{
			Likelihood:   o.RiskWeights.Likelihood,
			Financial:    o.RiskWeights.Financial,
			Operational:  o.RiskWeights.Operational,
			Reputational: o.RiskWeights.Reputational,
			Compliance:   o.RiskWeights.Compliance,
		}
	}

	for sector, factor := range o.IndustryFactors {
		cfg.IndustryFactors[sector] = factor
	}

	if o.OperationsCriticalUnits != nil {
		cfg.OperationsCriticalUnits = o.OperationsCriticalUnits
	}
	if o.CoreProcessAreas != nil {
		cfg.CoreProcessAreas = o.CoreProcessAreas
	}
	if o.MaxAcceptableLoss != nil {
		cfg.MaxAcceptableLoss = *o.MaxAcceptableLoss
	}

	if o.ComplianceWeights != nil {
		cfg.ComplianceWeights = domainConfig.ComplianceWeights{
			Implementation:    o.ComplianceWeights.Implementation,
			Effectiveness:     o.ComplianceWeights.Effectiveness,
			Maturity:          o.ComplianceWeights.Maturity,
			DocumentationBase: o.ComplianceWeights.DocumentationBase,
		}
	}

	for key, confidence := range o.MethodConfidence {
		m, err := types.ParseAssessmentMethod(key)
		if err != nil {
			return goerr.Wrap(err, "invalid assessment method in scoring config")
		}
		cfg.MethodConfidence[m] = confidence
	}

	if o.AutomatedTestingEnabled != nil {
		cfg.AutomatedTestingEnabled = *o.AutomatedTestingEnabled
	}
	if o.TargetMaturity != nil {
		cfg.TargetMaturity = *o.TargetMaturity
	}
	if o.RemediationDailyRate != nil {
		cfg.RemediationDailyRate = *o.RemediationDailyRate
	}
	if o.QuarterlyCapacityDays != nil {
		cfg.QuarterlyCapacityDays = *o.QuarterlyCapacityDays
	}

	return nil
}
