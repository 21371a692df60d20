package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// ComplianceGap describes the distance between a control's current and
// target maturity, with a remediation estimate.
type ComplianceGap struct {
	ControlID       int64             `json:"control_id"`
	ControlRef      string            `json:"control_ref"`
	ControlType     types.ControlType `json:"control_type"`
	Priority        types.Priority    `json:"priority,omitempty"`
	CurrentMaturity int               `json:"current_maturity"`
	TargetMaturity  int               `json:"target_maturity"`
	GapSize         int               `json:"gap_size"`
	EffortDays      float64           `json:"effort_days"`
	EstimatedCost   float64           `json:"estimated_cost"`
}

// RoadmapEntry assigns a gap's remediation work to a quarter.
type RoadmapEntry struct {
	ControlRef string  `json:"control_ref"`
	Quarter    int     `json:"quarter"`
	EffortDays float64 `json:"effort_days"`
	Cost       float64 `json:"cost"`
}

// RemediationEstimate aggregates the remediation work of a gap analysis.
type RemediationEstimate struct {
	TotalEffortDays  float64 `json:"total_effort_days"`
	TotalCost        float64 `json:"total_cost"`
	DurationQuarters int     `json:"duration_quarters"`
}

// GapAnalysis is the assessment-level gap analysis result.
type GapAnalysis struct {
	FrameworkID  int64 `json:"framework_id"`
	AssessmentID int64 `json:"assessment_id"`

	OverallCompliancePercentage float64                            `json:"overall_compliance_percentage"`
	ControlsByStatus            map[types.ImplementationStatus]int `json:"controls_by_status"`

	CriticalGaps     []ComplianceGap `json:"critical_gaps"`
	HighPriorityGaps []ComplianceGap `json:"high_priority_gaps"`

	RemediationRoadmap []RoadmapEntry      `json:"remediation_roadmap"`
	EstimatedEffort    RemediationEstimate `json:"estimated_effort"`

	GeneratedAt time.Time `json:"generated_at"`
}
