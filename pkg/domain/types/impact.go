package types

import "fmt"

// Impact represents the qualitative impact rating of a risk
type Impact string

const (
	ImpactNegligible Impact = "negligible"
	ImpactMinor      Impact = "minor"
	ImpactModerate   Impact = "moderate"
	ImpactMajor      Impact = "major"
	ImpactSevere     Impact = "severe"
)

// AllImpacts returns all valid impact ratings ordered from lowest to highest
func AllImpacts() []Impact {
	return []Impact{
		ImpactNegligible,
		ImpactMinor,
		ImpactModerate,
		ImpactMajor,
		ImpactSevere,
	}
}

// IsValid checks if the impact rating is valid
func (i Impact) IsValid() bool {
	switch i {
	case ImpactNegligible,
		ImpactMinor,
		ImpactModerate,
		ImpactMajor,
		ImpactSevere:
		return true
	default:
		return false
	}
}

// String returns the string representation of the impact rating
func (i Impact) String() string {
	return string(i)
}

// ParseImpact parses a string into an Impact
func ParseImpact(s string) (Impact, error) {
	i := Impact(s)
	if !i.IsValid() {
		return "", fmt.Errorf("invalid impact rating: %s", s)
	}
	return i, nil
}
