package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

func TestLikelihood_IsValid(t *testing.T) {
	for _, l := range types.AllLikelihoods() {
		gt.True(t, l.IsValid())
	}
	gt.False(t, types.Likelihood("extreme").IsValid())
	gt.False(t, types.Likelihood("").IsValid())
}

func TestParseLikelihood(t *testing.T) {
	l, err := types.ParseLikelihood("high")
	gt.NoError(t, err)
	gt.Equal(t, l, types.LikelihoodHigh)

	_, err = types.ParseLikelihood("HIGH")
	gt.Error(t, err)
}

func TestImpact_IsValid(t *testing.T) {
	for _, i := range types.AllImpacts() {
		gt.True(t, i.IsValid())
	}
	gt.False(t, types.Impact("catastrophic").IsValid())
}

func TestRiskCategory_IsValid(t *testing.T) {
	for _, c := range types.AllRiskCategories() {
		gt.True(t, c.IsValid())
	}
	gt.False(t, types.RiskCategory("unknown").IsValid())
}

func TestMethodology_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		method types.Methodology
		want   bool
	}{
		{"simple multiplication", types.MethodologySimpleMultiplication, true},
		{"weighted average", types.MethodologyWeightedAverage, true},
		{"quantitative", types.MethodologyQuantitative, true},
		{"expert judgment", types.MethodologyExpertJudgment, true},
		{"monte carlo is declared", types.MethodologyMonteCarlo, true},
		{"unknown method", types.Methodology("delphi"), false},
		{"empty", types.Methodology(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.method.IsValid(), tt.want)
		})
	}
}

func TestImplementationStatus_IsValid(t *testing.T) {
	for _, s := range types.AllImplementationStatuses() {
		gt.True(t, s.IsValid())
	}
	gt.False(t, types.ImplementationStatus("done").IsValid())
}

func TestEvidenceType_IsValid(t *testing.T) {
	for _, e := range types.AllEvidenceTypes() {
		gt.True(t, e.IsValid())
	}
	gt.False(t, types.EvidenceType("video").IsValid())
}

func TestAssessmentMethod_IsValid(t *testing.T) {
	for _, m := range types.AllAssessmentMethods() {
		gt.True(t, m.IsValid())
	}
	gt.False(t, types.AssessmentMethod("guesswork").IsValid())
}

func TestGeographicScope_IsValid(t *testing.T) {
	gt.True(t, types.ScopeGlobal.IsValid())
	gt.True(t, types.GeographicScope("").IsValid())
	gt.False(t, types.GeographicScope("planetary").IsValid())
}

func TestRiskTrend_IsValid(t *testing.T) {
	gt.True(t, types.TrendIncreasing.IsValid())
	gt.True(t, types.RiskTrend("").IsValid())
	gt.False(t, types.RiskTrend("sideways").IsValid())
}
