package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Risk represents a risk register entry. The scoring engine treats it as a
// read-only input record; lifecycle is owned by the repository layer.
type Risk struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    types.RiskCategory `json:"category"`

	BusinessUnit    string                `json:"business_unit,omitempty"`
	ProcessArea     string                `json:"process_area,omitempty"`
	GeographicScope types.GeographicScope `json:"geographic_scope,omitempty"`
	Trend           types.RiskTrend       `json:"trend,omitempty"`

	InherentLikelihood types.Likelihood `json:"inherent_likelihood"`
	InherentImpact     types.Impact     `json:"inherent_impact"`

	// Residual ratings are optional; empty means not yet rated.
	ResidualLikelihood types.Likelihood `json:"residual_likelihood,omitempty"`
	ResidualImpact     types.Impact     `json:"residual_impact,omitempty"`

	// Estimated financial impact range in dollars. Both must be set for the
	// quantitative methodology; Max must be >= Min.
	FinancialImpactMin *float64 `json:"financial_impact_min,omitempty"`
	FinancialImpactMax *float64 `json:"financial_impact_max,omitempty"`

	RegulatoryRequirements []string `json:"regulatory_requirements,omitempty"`
	ExternalDependencies   []string `json:"external_dependencies,omitempty"`
	AffectedAssets         []string `json:"affected_assets,omitempty"`
	ControlIDs             []int64  `json:"control_ids,omitempty"`
	IncidentCount          int      `json:"incident_count"`

	OwnerID        string     `json:"owner_id,omitempty"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasFinancialData reports whether both ends of the financial impact range
// are present.
func (r *Risk) HasFinancialData() bool {
	return r.FinancialImpactMin != nil && r.FinancialImpactMax != nil
}

// HasResidualRatings reports whether both residual likelihood and impact
// have been rated.
func (r *Risk) HasResidualRatings() bool {
	return r.ResidualLikelihood != "" && r.ResidualImpact != ""
}

// RiskContext carries optional business context that modifies scoring.
// It never mutates the risk record itself.
type RiskContext struct {
	BusinessUnit           string   `json:"business_unit,omitempty"`
	IndustrySector         string   `json:"industry_sector,omitempty"`
	RegulatoryEnvironment  []string `json:"regulatory_environment,omitempty"`
	MarketConditions       string   `json:"market_conditions,omitempty"`
	OrganizationalMaturity string   `json:"organizational_maturity,omitempty"`
	RiskAppetite           string   `json:"risk_appetite,omitempty"`
}
