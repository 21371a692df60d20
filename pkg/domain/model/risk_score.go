package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// RiskScore is the result of a single risk assessment. Overall score scale
// depends on the methodology: simple multiplication yields up to 100
// (likelihood x impact), the other methodologies stay within 0-10. Priority
// classification treats anything at or above the critical threshold as
// critical regardless of scale.
type RiskScore struct {
	ID     int64 `json:"id"`
	RiskID int64 `json:"risk_id"`

	LikelihoodScore float64        `json:"likelihood_score"`
	ImpactScore     float64        `json:"impact_score"`
	OverallScore    float64        `json:"overall_score"`
	Priority        types.Priority `json:"priority"`

	// ConfidenceLevel is in [0,1].
	ConfidenceLevel float64 `json:"confidence_level"`

	// Methodology records the methodology actually used, which differs from
	// the requested one when a fallback occurred. Residual assessments carry
	// a "residual_" prefix.
	Methodology string `json:"methodology"`

	// FallbackReason is set when the requested methodology could not be
	// applied and the scorer fell back to simple multiplication.
	FallbackReason string `json:"fallback_reason,omitempty"`

	// CalculationDetails holds inputs and intermediate values for audit.
	CalculationDetails map[string]any `json:"calculation_details,omitempty"`

	AssessedAt time.Time `json:"assessed_at"`
}

// ExpertJudgment is a prior expert assessment record consumed by the
// expert judgment methodology.
type ExpertJudgment struct {
	RiskID          int64     `json:"risk_id"`
	AssessorID      string    `json:"assessor_id"`
	AssessorQuality float64   `json:"assessor_quality"` // [0,1]
	Rationale       string    `json:"rationale,omitempty"`
	Criteria        []string  `json:"criteria,omitempty"`
	DataSources     []string  `json:"data_sources,omitempty"`
	Validated       bool      `json:"validated"`
	AssessedAt      time.Time `json:"assessed_at"`
}

// BulkScoreResult is one entry of a bulk assessment. Failed items carry an
// error message instead of a score so one failure never aborts the batch.
type BulkScoreResult struct {
	Score *RiskScore `json:"score,omitempty"`
	Error string     `json:"error,omitempty"`
}
