package types

// GeographicScope represents the geographic reach of a risk
type GeographicScope string

const (
	ScopeLocal    GeographicScope = "local"
	ScopeRegional GeographicScope = "regional"
	ScopeNational GeographicScope = "national"
	ScopeGlobal   GeographicScope = "global"
)

// IsValid checks if the geographic scope is valid. Empty is allowed and
// treated as local by the scorer.
func (g GeographicScope) IsValid() bool {
	switch g {
	case ScopeLocal, ScopeRegional, ScopeNational, ScopeGlobal, "":
		return true
	default:
		return false
	}
}

// String returns the string representation of the geographic scope
func (g GeographicScope) String() string {
	return string(g)
}

// RiskTrend represents the observed direction of a risk over time
type RiskTrend string

const (
	TrendIncreasing RiskTrend = "increasing"
	TrendStable     RiskTrend = "stable"
	TrendDecreasing RiskTrend = "decreasing"
)

// IsValid checks if the risk trend is valid. Empty is allowed and treated
// as stable by the scorer.
func (t RiskTrend) IsValid() bool {
	switch t {
	case TrendIncreasing, TrendStable, TrendDecreasing, "":
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk trend
func (t RiskTrend) String() string {
	return string(t)
}
