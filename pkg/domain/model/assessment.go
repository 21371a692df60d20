package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Assessment represents one compliance assessment run over a framework.
type Assessment struct {
	ID          int64  `json:"id"`
	FrameworkID int64  `json:"framework_id"`
	Name        string `json:"name"`

	// Scope filters the controls included in the assessment. Entries match
	// control family, framework-native control ID, or control type. Empty
	// scope means every control of the framework is in scope.
	Scope []string `json:"scope,omitempty"`

	OverallComplianceScore float64             `json:"overall_compliance_score"`
	ControlAssessments     []ControlAssessment `json:"control_assessments"`
	Findings               []ComplianceFinding `json:"findings"`

	// FindingsBySeverity tallies findings across all assessed controls.
	FindingsBySeverity map[types.FindingSeverity]int `json:"findings_by_severity,omitempty"`

	ConductedBy string    `json:"conducted_by,omitempty"`
	ConductedAt time.Time `json:"conducted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ControlAssessment is the per-control result of the compliance scoring
// pipeline.
type ControlAssessment struct {
	ControlID        int64                  `json:"control_id"`
	ControlRef       string                 `json:"control_ref"`
	AssessmentMethod types.AssessmentMethod `json:"assessment_method"`

	ComplianceStatus         types.ImplementationStatus `json:"compliance_status"`
	EffectivenessRating      types.EffectivenessRating  `json:"effectiveness_rating"`
	MaturityLevel            int                        `json:"maturity_level"`            // 1-5
	ComplianceScore          float64                    `json:"compliance_score"`          // 0-10, one decimal
	ImplementationPercentage float64                    `json:"implementation_percentage"` // 0-100
	ConfidenceLevel          types.ConfidenceLevel      `json:"confidence_level"`

	EvidenceQualityScore      float64  `json:"evidence_quality_score"`
	DocumentationCompleteness float64  `json:"documentation_completeness"`
	Limitations               []string `json:"limitations,omitempty"`

	Findings          []Finding            `json:"findings,omitempty"`
	Recommendations   []string             `json:"recommendations,omitempty"`
	EvidenceCollected []types.EvidenceType `json:"evidence_collected,omitempty"`
}

// Finding is a single issue identified while assessing one control.
type Finding struct {
	Type           types.FindingType     `json:"type"`
	Severity       types.FindingSeverity `json:"severity"`
	Description    string                `json:"description"`
	Impact         string                `json:"impact,omitempty"`
	Recommendation string                `json:"recommendation,omitempty"`
}

// ComplianceFinding is an assessment-level finding record, persisted so it
// can be tracked to resolution independently of the assessment run.
type ComplianceFinding struct {
	ID           string `json:"id"`
	AssessmentID int64  `json:"assessment_id"`
	ControlRef   string `json:"control_ref"`
	Finding
	CreatedAt time.Time `json:"created_at"`
}
