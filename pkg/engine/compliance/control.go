package compliance

import (
	"fmt"
	"math"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// AssessControl runs the full scoring pipeline for one control and its
// collected evidence.
func (s *Scorer) AssessControl(control *model.Control, evidence []model.Evidence) model.ControlAssessment {
	method := s.determineMethod(control)
	analysis := s.AnalyzeEvidence(evidence)

	implementation := s.implementationPercentage(control, analysis)
	status := classifyStatus(implementation, analysis.QualityScore)
	effectiveness := s.effectivenessRating(control, implementation, analysis)
	maturity := s.maturityLevel(implementation/100, analysis)
	score := s.complianceScore(implementation/100, effectiveness, maturity)
	confidence := s.confidenceLevel(method, analysis)
	findings := buildFindings(control, status, analysis)

	evidenceTypes := make([]types.EvidenceType, 0, len(evidence))
	for _, ev := range evidence {
		evidenceTypes = append(evidenceTypes, ev.EvidenceType)
	}

	return model.ControlAssessment{
		ControlID:                 control.ID,
		ControlRef:                control.ControlID,
		AssessmentMethod:          method,
		ComplianceStatus:          status,
		EffectivenessRating:       effectiveness,
		MaturityLevel:             maturity,
		ComplianceScore:           score,
		ImplementationPercentage:  implementation,
		ConfidenceLevel:           confidence,
		EvidenceQualityScore:      analysis.QualityScore,
		DocumentationCompleteness: analysis.DocumentationCompleteness,
		Limitations:               analysis.Limitations,
		Findings:                  findings,
		Recommendations:           s.recommendations(control, maturity, findings),
		EvidenceCollected:         evidenceTypes,
	}
}

// determineMethod picks the assessment method from the control's testing
// capability and type.
func (s *Scorer) determineMethod(control *model.Control) types.AssessmentMethod {
	if control.AutomatedTesting && s.cfg.AutomatedTestingEnabled {
		return types.MethodAutomatedTesting
	}

	switch control.ControlType {
	case types.ControlTypeTechnical:
		return types.MethodTechnicalTesting
	case types.ControlTypeAdministrative:
		return types.MethodDocumentReview
	case types.ControlTypePhysical:
		return types.MethodPhysicalInspection
	default:
		return types.MethodInterviewAndObservation
	}
}

// implementationPercentage blends the declared status with the evidence
// profile. Result is clamped to [0,100].
func (s *Scorer) implementationPercentage(control *model.Control, analysis model.EvidenceAnalysis) float64 {
	var base float64
	switch control.ImplementationStatus {
	case types.StatusCompliant:
		base = 0.9
	case types.StatusPartiallyCompliant:
		base = 0.6
	case types.StatusNonCompliant:
		base = 0.2
	default:
		base = 0.4
	}

	pct := 100 * (0.5*base + 0.3*analysis.QualityScore + 0.2*analysis.DocumentationCompleteness)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// classifyStatus maps implementation and evidence quality to a compliance
// status. The [30,60) band with weak evidence intentionally lands in
// requires_review rather than non_compliant.
func classifyStatus(implementation, quality float64) types.ImplementationStatus {
	switch {
	case implementation >= 85 && quality >= 0.7:
		return types.StatusCompliant
	case implementation >= 60:
		return types.StatusPartiallyCompliant
	case implementation < 30:
		return types.StatusNonCompliant
	default:
		return types.StatusRequiresReview
	}
}

func (s *Scorer) effectivenessRating(control *model.Control, implementation float64, analysis model.EvidenceAnalysis) types.EffectivenessRating {
	score := implementation / 100 * 0.4
	if analysis.TestingEvidenceAvailable {
		score += 0.3
	}
	score += analysis.DocumentationCompleteness * 0.2
	if control.ControlType == types.ControlTypePreventive {
		score += 0.1
	}

	switch {
	case score >= 0.8:
		return types.EffectivenessEffective
	case score >= 0.6:
		return types.EffectivenessPartiallyEffective
	default:
		return types.EffectivenessIneffective
	}
}

// maturityLevel finds the highest level whose criteria are all met in the
// three dimensions. Level 1 is the floor.
func (s *Scorer) maturityLevel(implementation float64, analysis model.EvidenceAnalysis) int {
	testing := 0.0
	if analysis.TestingEvidenceAvailable {
		testing = 1.0
	}

	for i := len(s.cfg.MaturityCriteria) - 1; i >= 0; i-- {
		c := s.cfg.MaturityCriteria[i]
		if implementation >= c.Implementation &&
			analysis.DocumentationCompleteness >= c.Documentation &&
			testing >= c.Testing {
			return c.Level
		}
	}
	return 1
}

func effectivenessScore(rating types.EffectivenessRating) float64 {
	switch rating {
	case types.EffectivenessEffective:
		return 1.0
	case types.EffectivenessPartiallyEffective:
		return 0.7
	default:
		return 0.3
	}
}

// complianceScore combines the pipeline outputs into a 0-10 score rounded
// to one decimal.
func (s *Scorer) complianceScore(implementation float64, rating types.EffectivenessRating, maturity int) float64 {
	w := s.cfg.ComplianceWeights
	maxLevel := float64(len(s.cfg.MaturityCriteria))

	score := 10 * (implementation*w.Implementation +
		effectivenessScore(rating)*w.Effectiveness +
		float64(maturity)/maxLevel*w.Maturity +
		w.DocumentationBase)

	return math.Round(score*10) / 10
}

func (s *Scorer) confidenceLevel(method types.AssessmentMethod, analysis model.EvidenceAnalysis) types.ConfidenceLevel {
	score := analysis.QualityScore*0.4 +
		s.cfg.MethodConfidence[method]*0.4 +
		analysis.DocumentationCompleteness*0.2

	switch {
	case score >= 0.8:
		return types.ConfidenceHigh
	case score >= 0.6:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

func buildFindings(control *model.Control, status types.ImplementationStatus, analysis model.EvidenceAnalysis) []model.Finding {
	var findings []model.Finding

	if status == types.StatusNonCompliant {
		findings = append(findings, model.Finding{
			Type:           types.FindingTypeDeficiency,
			Severity:       types.SeverityHigh,
			Description:    fmt.Sprintf("control %s is not implemented to an acceptable level", control.ControlID),
			Impact:         "control objective is not met, exposing the organization to the underlying risk",
			Recommendation: fmt.Sprintf("remediate implementation of control %s as a priority", control.ControlID),
		})
	}

	if analysis.QualityScore < 0.5 {
		findings = append(findings, model.Finding{
			Type:           types.FindingTypeObservation,
			Severity:       types.SeverityMedium,
			Description:    "evidence supporting the implementation claim is weak or incomplete",
			Impact:         "assessment confidence is reduced",
			Recommendation: "collect stronger evidence such as test results or audit reports",
		})
	}

	if !analysis.TestingEvidenceAvailable {
		findings = append(findings, model.Finding{
			Type:           types.FindingTypeRecommendation,
			Severity:       types.SeverityMedium,
			Description:    "no testing evidence is available for this control",
			Impact:         "operating effectiveness cannot be verified",
			Recommendation: "establish periodic testing and retain the results as evidence",
		})
	}

	return findings
}

// recommendations merges maturity-gated, finding-derived and
// control-specific recommendations, de-duplicated and capped at five.
func (s *Scorer) recommendations(control *model.Control, maturity int, findings []model.Finding) []string {
	var candidates []string

	if maturity < 2 {
		candidates = append(candidates, "define and document the control process; execution is currently ad hoc")
	}
	if maturity < 3 {
		candidates = append(candidates, "standardize the control across the organization with documented procedures")
	}
	if maturity < 4 {
		candidates = append(candidates, "introduce measurement and periodic review of control performance")
	}

	for _, f := range findings {
		if f.Recommendation != "" {
			candidates = append(candidates, f.Recommendation)
		}
	}

	if control.AutomatedTesting && control.AutomationTool == "" {
		candidates = append(candidates, "record the automation tool used for continuous control testing")
	}
	if control.TestingMethodology == "" {
		candidates = append(candidates, "document the testing methodology for this control")
	}

	seen := make(map[string]bool, len(candidates))
	var recommendations []string
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		recommendations = append(recommendations, c)
		if len(recommendations) == 5 {
			break
		}
	}

	return recommendations
}
