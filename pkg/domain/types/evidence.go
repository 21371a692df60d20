package types

import "fmt"

// EvidenceType represents the kind of evidence collected for a control
type EvidenceType string

const (
	EvidenceTypeDocument      EvidenceType = "document"
	EvidenceTypePolicy        EvidenceType = "policy"
	EvidenceTypeTestResult    EvidenceType = "test_result"
	EvidenceTypeAuditReport   EvidenceType = "audit_report"
	EvidenceTypeConfiguration EvidenceType = "configuration"
	EvidenceTypeLogFile       EvidenceType = "log_file"
	EvidenceTypeScreenshot    EvidenceType = "screenshot"
	EvidenceTypeInterview     EvidenceType = "interview"
)

// AllEvidenceTypes returns all valid evidence types
func AllEvidenceTypes() []EvidenceType {
	return []EvidenceType{
		EvidenceTypeDocument,
		EvidenceTypePolicy,
		EvidenceTypeTestResult,
		EvidenceTypeAuditReport,
		EvidenceTypeConfiguration,
		EvidenceTypeLogFile,
		EvidenceTypeScreenshot,
		EvidenceTypeInterview,
	}
}

// IsValid checks if the evidence type is valid
func (e EvidenceType) IsValid() bool {
	switch e {
	case EvidenceTypeDocument,
		EvidenceTypePolicy,
		EvidenceTypeTestResult,
		EvidenceTypeAuditReport,
		EvidenceTypeConfiguration,
		EvidenceTypeLogFile,
		EvidenceTypeScreenshot,
		EvidenceTypeInterview:
		return true
	default:
		return false
	}
}

// String returns the string representation of the evidence type
func (e EvidenceType) String() string {
	return string(e)
}

// ParseEvidenceType parses a string into an EvidenceType
func ParseEvidenceType(s string) (EvidenceType, error) {
	e := EvidenceType(s)
	if !e.IsValid() {
		return "", fmt.Errorf("invalid evidence type: %s", s)
	}
	return e, nil
}
