package types

import "fmt"

// AssessmentMethod represents how a control is assessed
type AssessmentMethod string

const (
	MethodAutomatedTesting        AssessmentMethod = "automated_testing"
	MethodTechnicalTesting        AssessmentMethod = "technical_testing"
	MethodDocumentReview          AssessmentMethod = "document_review"
	MethodPhysicalInspection      AssessmentMethod = "physical_inspection"
	MethodInterviewAndObservation AssessmentMethod = "interview_and_observation"
)

// AllAssessmentMethods returns all valid assessment methods
func AllAssessmentMethods() []AssessmentMethod {
	return []AssessmentMethod{
		MethodAutomatedTesting,
		MethodTechnicalTesting,
		MethodDocumentReview,
		MethodPhysicalInspection,
		MethodInterviewAndObservation,
	}
}

// IsValid checks if the assessment method is valid
func (m AssessmentMethod) IsValid() bool {
	switch m {
	case MethodAutomatedTesting,
		MethodTechnicalTesting,
		MethodDocumentReview,
		MethodPhysicalInspection,
		MethodInterviewAndObservation:
		return true
	default:
		return false
	}
}

// String returns the string representation of the assessment method
func (m AssessmentMethod) String() string {
	return string(m)
}

// EffectivenessRating represents how effective a control is judged to be
type EffectivenessRating string

const (
	EffectivenessEffective          EffectivenessRating = "effective"
	EffectivenessPartiallyEffective EffectivenessRating = "partially_effective"
	EffectivenessIneffective        EffectivenessRating = "ineffective"
)

// IsValid checks if the effectiveness rating is valid
func (e EffectivenessRating) IsValid() bool {
	switch e {
	case EffectivenessEffective,
		EffectivenessPartiallyEffective,
		EffectivenessIneffective:
		return true
	default:
		return false
	}
}

// String returns the string representation of the effectiveness rating
func (e EffectivenessRating) String() string {
	return string(e)
}

// ConfidenceLevel represents the confidence tier of an assessment result
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// IsValid checks if the confidence level is valid
func (c ConfidenceLevel) IsValid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the confidence level
func (c ConfidenceLevel) String() string {
	return string(c)
}

// ParseAssessmentMethod parses a string into an AssessmentMethod
func ParseAssessmentMethod(s string) (AssessmentMethod, error) {
	m := AssessmentMethod(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid assessment method: %s", s)
	}
	return m, nil
}
