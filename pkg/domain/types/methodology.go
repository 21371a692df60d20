package types

import "fmt"

// Methodology represents a risk assessment methodology
type Methodology string

const (
	MethodologySimpleMultiplication Methodology = "simple_multiplication"
	MethodologyWeightedAverage      Methodology = "weighted_average"
	MethodologyQuantitative         Methodology = "quantitative"
	MethodologyExpertJudgment       Methodology = "expert_judgment"

	// MethodologyMonteCarlo is accepted but not yet implemented; the scorer
	// falls back to simple multiplication and records the fallback reason.
	MethodologyMonteCarlo Methodology = "monte_carlo"
)

// AllMethodologies returns all valid assessment methodologies
func AllMethodologies() []Methodology {
	return []Methodology{
		MethodologySimpleMultiplication,
		MethodologyWeightedAverage,
		MethodologyQuantitative,
		MethodologyExpertJudgment,
		MethodologyMonteCarlo,
	}
}

// IsValid checks if the methodology is valid
func (m Methodology) IsValid() bool {
	switch m {
	case MethodologySimpleMultiplication,
		MethodologyWeightedAverage,
		MethodologyQuantitative,
		MethodologyExpertJudgment,
		MethodologyMonteCarlo:
		return true
	default:
		return false
	}
}

// String returns the string representation of the methodology
func (m Methodology) String() string {
	return string(m)
}

// ParseMethodology parses a string into a Methodology
func ParseMethodology(s string) (Methodology, error) {
	m := Methodology(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid assessment methodology: %s", s)
	}
	return m, nil
}
