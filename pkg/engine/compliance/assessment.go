package compliance

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// InScope reports whether a control matches the assessment scope. Scope
// entries match the control family, the framework-native control ID, or
// the control type. An empty scope includes every control.
func InScope(control *model.Control, scope []string) bool {
	if len(scope) == 0 {
		return true
	}
	return slices.Contains(scope, control.ControlFamily) ||
		slices.Contains(scope, control.ControlID) ||
		slices.Contains(scope, control.ControlType.String())
}

// ConductAssessment assesses every in-scope control and aggregates the
// results into an assessment record with per-finding records and a
// severity tally.
func (s *Scorer) ConductAssessment(framework *model.Framework, name string, scope []string, controls []*model.Control, evidenceByControl map[int64][]model.Evidence) *model.Assessment {
	assessment := &model.Assessment{
		FrameworkID:        framework.ID,
		Name:               name,
		Scope:              scope,
		FindingsBySeverity: make(map[types.FindingSeverity]int),
		ConductedAt:        time.Now().UTC(),
	}

	var total float64
	for _, control := range controls {
		if !InScope(control, scope) {
			continue
		}

		result := s.AssessControl(control, evidenceByControl[control.ID])
		assessment.ControlAssessments = append(assessment.ControlAssessments, result)
		total += result.ComplianceScore

		for _, f := range result.Findings {
			assessment.FindingsBySeverity[f.Severity]++
			assessment.Findings = append(assessment.Findings, model.ComplianceFinding{
				ID:         uuid.NewString(),
				ControlRef: result.ControlRef,
				Finding:    f,
				CreatedAt:  assessment.ConductedAt,
			})
		}
	}

	if n := len(assessment.ControlAssessments); n > 0 {
		assessment.OverallComplianceScore = math.Round(total/float64(n)*10) / 10
	}

	return assessment
}
