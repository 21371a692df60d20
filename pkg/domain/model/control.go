package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Framework represents a compliance framework (e.g. NIST 800-53, SOC 2).
type Framework struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	// TargetMaturity is the maturity level (1-5) gap analysis compares
	// control assessments against.
	TargetMaturity int `json:"target_maturity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Control represents a compliance control within a framework.
type Control struct {
	ID          int64 `json:"id"`
	FrameworkID int64 `json:"framework_id"`

	// ControlID is the framework-native identifier (e.g. "AC-2").
	ControlID     string `json:"control_id"`
	ControlFamily string `json:"control_family,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`

	ControlType          types.ControlType          `json:"control_type"`
	ImplementationStatus types.ImplementationStatus `json:"implementation_status"`
	Priority             types.Priority             `json:"priority,omitempty"`

	AutomatedTesting   bool   `json:"automated_testing"`
	AutomationTool     string `json:"automation_tool,omitempty"`
	TestingMethodology string `json:"testing_methodology,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Evidence represents one piece of evidence collected for a control.
type Evidence struct {
	ID             int64              `json:"id"`
	ControlID      int64              `json:"control_id"`
	EvidenceType   types.EvidenceType `json:"evidence_type"`
	Description    string             `json:"description,omitempty"`
	Reference      string             `json:"reference,omitempty"`
	Validated      bool               `json:"validated"`
	CollectionDate time.Time          `json:"collection_date"`
	CreatedAt      time.Time          `json:"created_at"`
}

// EvidenceAnalysis is derived from the evidence collected for one control.
// It is an intermediate value and never persisted.
type EvidenceAnalysis struct {
	QualityScore              float64 // [0,1]
	DocumentationCompleteness float64 // [0,1], capped
	TestingEvidenceAvailable  bool
	ImplementationEvidence    []string
	Limitations               []string
}
