package compliance

import (
	"fmt"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// AnalyzeEvidence derives an evidence quality profile from the evidence
// collected for one control. Missing evidence is not an error: it degrades
// to a minimal quality score with a recorded limitation.
func (s *Scorer) AnalyzeEvidence(evidence []model.Evidence) model.EvidenceAnalysis {
	if len(evidence) == 0 {
		return model.EvidenceAnalysis{
			QualityScore: 0.1,
			Limitations:  []string{"no evidence collected for this control"},
		}
	}

	var analysis model.EvidenceAnalysis
	for _, ev := range evidence {
		switch ev.EvidenceType {
		case types.EvidenceTypeDocument, types.EvidenceTypePolicy:
			analysis.DocumentationCompleteness += 0.2

		case types.EvidenceTypeTestResult, types.EvidenceTypeAuditReport:
			analysis.DocumentationCompleteness += 0.3
			analysis.TestingEvidenceAvailable = true

		case types.EvidenceTypeConfiguration, types.EvidenceTypeLogFile:
			analysis.DocumentationCompleteness += 0.25
			analysis.ImplementationEvidence = append(analysis.ImplementationEvidence,
				fmt.Sprintf("%s: %s", ev.EvidenceType, ev.Description))

		default:
			analysis.Limitations = append(analysis.Limitations,
				fmt.Sprintf("evidence type %s does not contribute to documentation completeness", ev.EvidenceType))
		}
	}

	if analysis.DocumentationCompleteness > 1.0 {
		analysis.DocumentationCompleteness = 1.0
	}

	testing := 0.5
	if analysis.TestingEvidenceAvailable {
		testing = 1.0
	}
	implementation := min(1.0, float64(len(analysis.ImplementationEvidence))*0.3)

	analysis.QualityScore = (analysis.DocumentationCompleteness + testing + implementation) / 3

	return analysis
}
