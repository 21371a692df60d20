package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.Default()
	gt.NoError(t, cfg.Validate())
}

func TestValidate_MissingLikelihood(t *testing.T) {
	cfg := config.Default()
	delete(cfg.LikelihoodScale, types.LikelihoodHigh)
	gt.Error(t, cfg.Validate())
}

func TestValidate_ThresholdsMustIncrease(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityThresholds = []config.PriorityThreshold{
		{Priority: types.PriorityLow, Min: 0},
		{Priority: types.PriorityMedium, Min: 5.0},
		{Priority: types.PriorityHigh, Min: 2.5},
		{Priority: types.PriorityCritical, Min: 7.5},
	}
	gt.Error(t, cfg.Validate())
}

func TestValidate_ThresholdsMustStartAtZero(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityThresholds[0].Min = 1.0
	gt.Error(t, cfg.Validate())
}

func TestValidate_RiskWeightsMustSumToOne(t *testing.T) {
	cfg := config.Default()
	cfg.RiskWeights.Financial = 0.5
	gt.Error(t, cfg.Validate())
}

func TestValidate_MaturityCriteriaMonotone(t *testing.T) {
	cfg := config.Default()
	cfg.MaturityCriteria[3].Implementation = 0.1 // below level 3
	gt.Error(t, cfg.Validate())
}

func TestValidate_FinancialConstants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.ScoringConfig)
	}{
		{"zero acceptable loss", func(c *config.ScoringConfig) { c.MaxAcceptableLoss = 0 }},
		{"negative daily rate", func(c *config.ScoringConfig) { c.RemediationDailyRate = -1 }},
		{"zero quarterly capacity", func(c *config.ScoringConfig) { c.QuarterlyCapacityDays = 0 }},
		{"target maturity above scale", func(c *config.ScoringConfig) { c.TargetMaturity = 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			gt.Error(t, cfg.Validate())
		})
	}
}
