package types

import "fmt"

// RiskCategory represents the business category of a risk
type RiskCategory string

const (
	RiskCategoryOperational   RiskCategory = "operational"
	RiskCategoryFinancial     RiskCategory = "financial"
	RiskCategoryStrategic     RiskCategory = "strategic"
	RiskCategorySecurity      RiskCategory = "security"
	RiskCategoryCompliance    RiskCategory = "compliance"
	RiskCategoryEnvironmental RiskCategory = "environmental"
	RiskCategoryLegal         RiskCategory = "legal"
	RiskCategoryTechnology    RiskCategory = "technology"
	RiskCategoryReputational  RiskCategory = "reputational"
)

// AllRiskCategories returns all valid risk categories
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryOperational,
		RiskCategoryFinancial,
		RiskCategoryStrategic,
		RiskCategorySecurity,
		RiskCategoryCompliance,
		RiskCategoryEnvironmental,
		RiskCategoryLegal,
		RiskCategoryTechnology,
		RiskCategoryReputational,
	}
}

// IsValid checks if the risk category is valid
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskCategoryOperational,
		RiskCategoryFinancial,
		RiskCategoryStrategic,
		RiskCategorySecurity,
		RiskCategoryCompliance,
		RiskCategoryEnvironmental,
		RiskCategoryLegal,
		RiskCategoryTechnology,
		RiskCategoryReputational:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk category
func (c RiskCategory) String() string {
	return string(c)
}

// ParseRiskCategory parses a string into a RiskCategory
func ParseRiskCategory(s string) (RiskCategory, error) {
	c := RiskCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid risk category: %s", s)
	}
	return c, nil
}
