package types

import "fmt"

// ControlType represents the classification of a compliance control
type ControlType string

const (
	ControlTypeTechnical      ControlType = "technical"
	ControlTypeAdministrative ControlType = "administrative"
	ControlTypePhysical       ControlType = "physical"
	ControlTypePreventive     ControlType = "preventive"
	ControlTypeDetective      ControlType = "detective"
	ControlTypeCorrective     ControlType = "corrective"
)

// AllControlTypes returns all valid control types
func AllControlTypes() []ControlType {
	return []ControlType{
		ControlTypeTechnical,
		ControlTypeAdministrative,
		ControlTypePhysical,
		ControlTypePreventive,
		ControlTypeDetective,
		ControlTypeCorrective,
	}
}

// IsValid checks if the control type is valid
func (c ControlType) IsValid() bool {
	switch c {
	case ControlTypeTechnical,
		ControlTypeAdministrative,
		ControlTypePhysical,
		ControlTypePreventive,
		ControlTypeDetective,
		ControlTypeCorrective:
		return true
	default:
		return false
	}
}

// String returns the string representation of the control type
func (c ControlType) String() string {
	return string(c)
}

// ParseControlType parses a string into a ControlType
func ParseControlType(s string) (ControlType, error) {
	c := ControlType(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid control type: %s", s)
	}
	return c, nil
}

// ImplementationStatus represents the compliance status of a control.
// NotAssessed is only meaningful on input records; RequiresReview is only
// produced by the assessment pipeline.
type ImplementationStatus string

const (
	StatusCompliant          ImplementationStatus = "compliant"
	StatusPartiallyCompliant ImplementationStatus = "partially_compliant"
	StatusNonCompliant       ImplementationStatus = "non_compliant"
	StatusNotAssessed        ImplementationStatus = "not_assessed"
	StatusRequiresReview     ImplementationStatus = "requires_review"
)

// AllImplementationStatuses returns all valid implementation statuses
func AllImplementationStatuses() []ImplementationStatus {
	return []ImplementationStatus{
		StatusCompliant,
		StatusPartiallyCompliant,
		StatusNonCompliant,
		StatusNotAssessed,
		StatusRequiresReview,
	}
}

// IsValid checks if the implementation status is valid
func (s ImplementationStatus) IsValid() bool {
	switch s {
	case StatusCompliant,
		StatusPartiallyCompliant,
		StatusNonCompliant,
		StatusNotAssessed,
		StatusRequiresReview:
		return true
	default:
		return false
	}
}

// String returns the string representation of the implementation status
func (s ImplementationStatus) String() string {
	return string(s)
}

// ParseImplementationStatus parses a string into an ImplementationStatus
func ParseImplementationStatus(s string) (ImplementationStatus, error) {
	st := ImplementationStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid implementation status: %s", s)
	}
	return st, nil
}
