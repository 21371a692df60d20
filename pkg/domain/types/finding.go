package types

// FindingType represents the classification of an assessment finding
type FindingType string

const (
	FindingTypeDeficiency     FindingType = "deficiency"
	FindingTypeObservation    FindingType = "observation"
	FindingTypeRecommendation FindingType = "recommendation"
)

// IsValid checks if the finding type is valid
func (f FindingType) IsValid() bool {
	switch f {
	case FindingTypeDeficiency,
		FindingTypeObservation,
		FindingTypeRecommendation:
		return true
	default:
		return false
	}
}

// String returns the string representation of the finding type
func (f FindingType) String() string {
	return string(f)
}

// FindingSeverity represents the severity of an assessment finding
type FindingSeverity string

const (
	SeverityCritical FindingSeverity = "critical"
	SeverityHigh     FindingSeverity = "high"
	SeverityMedium   FindingSeverity = "medium"
	SeverityLow      FindingSeverity = "low"
)

// AllFindingSeverities returns all valid finding severities ordered from highest to lowest
func AllFindingSeverities() []FindingSeverity {
	return []FindingSeverity{
		SeverityCritical,
		SeverityHigh,
		SeverityMedium,
		SeverityLow,
	}
}

// IsValid checks if the finding severity is valid
func (s FindingSeverity) IsValid() bool {
	switch s {
	case SeverityCritical,
		SeverityHigh,
		SeverityMedium,
		SeverityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the finding severity
func (s FindingSeverity) String() string {
	return string(s)
}
