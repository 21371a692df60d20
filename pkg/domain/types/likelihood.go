package types

import "fmt"

// Likelihood represents the qualitative likelihood rating of a risk
type Likelihood string

const (
	LikelihoodVeryLow  Likelihood = "very_low"
	LikelihoodLow      Likelihood = "low"
	LikelihoodMedium   Likelihood = "medium"
	LikelihoodHigh     Likelihood = "high"
	LikelihoodVeryHigh Likelihood = "very_high"
	LikelihoodCertain  Likelihood = "certain"
)

// AllLikelihoods returns all valid likelihood ratings ordered from lowest to highest
func AllLikelihoods() []Likelihood {
	return []Likelihood{
		LikelihoodVeryLow,
		LikelihoodLow,
		LikelihoodMedium,
		LikelihoodHigh,
		LikelihoodVeryHigh,
		LikelihoodCertain,
	}
}

// IsValid checks if the likelihood rating is valid
func (l Likelihood) IsValid() bool {
	switch l {
	case LikelihoodVeryLow,
		LikelihoodLow,
		LikelihoodMedium,
		LikelihoodHigh,
		LikelihoodVeryHigh,
		LikelihoodCertain:
		return true
	default:
		return false
	}
}

// String returns the string representation of the likelihood rating
func (l Likelihood) String() string {
	return string(l)
}

// ParseLikelihood parses a string into a Likelihood
func ParseLikelihood(s string) (Likelihood, error) {
	l := Likelihood(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid likelihood rating: %s", s)
	}
	return l, nil
}
