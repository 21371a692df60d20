package compliance

import (
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
)

// Scorer computes per-control compliance assessments and assessment-level
// gap analyses. Like the risk scorer it is a pure pipeline over input
// records, configured entirely through the scoring configuration.
type Scorer struct {
	cfg *config.ScoringConfig
}

// New creates a Scorer with the given configuration.
func New(cfg *config.ScoringConfig) *Scorer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Scorer{cfg: cfg}
}
