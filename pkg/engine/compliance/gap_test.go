package compliance_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/engine/compliance"
)

func gapFramework() *model.Framework {
	return &model.Framework{ID: 1, Name: "NIST 800-53", TargetMaturity: 4}
}

func gapControl(id int64, ref string, ctype types.ControlType, priority types.Priority) *model.Control {
	return &model.Control{
		ID:          id,
		FrameworkID: 1,
		ControlID:   ref,
		ControlType: ctype,
		Priority:    priority,
	}
}

func gapAssessment(results ...model.ControlAssessment) *model.Assessment {
	return &model.Assessment{
		ID:                 10,
		FrameworkID:        1,
		ControlAssessments: results,
	}
}

func TestGapClassification(t *testing.T) {
	scorer := compliance.New(config.Default())

	controls := map[int64]*model.Control{
		1: gapControl(1, "AC-1", types.ControlTypeTechnical, types.PriorityMedium),        // gap 3 -> critical
		2: gapControl(2, "AC-2", types.ControlTypeAdministrative, types.PriorityCritical), // gap 1, critical priority -> critical
		3: gapControl(3, "AC-3", types.ControlTypePhysical, types.PriorityMedium),         // gap 2 -> high priority
		4: gapControl(4, "AC-4", types.ControlTypePhysical, types.PriorityMedium),         // gap 1 -> dropped
	}

	assessment := gapAssessment(
		model.ControlAssessment{ControlID: 1, ControlRef: "AC-1", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 1, ImplementationPercentage: 20},
		model.ControlAssessment{ControlID: 2, ControlRef: "AC-2", ComplianceStatus: types.StatusPartiallyCompliant, MaturityLevel: 3, ImplementationPercentage: 60},
		model.ControlAssessment{ControlID: 3, ControlRef: "AC-3", ComplianceStatus: types.StatusRequiresReview, MaturityLevel: 2, ImplementationPercentage: 40},
		model.ControlAssessment{ControlID: 4, ControlRef: "AC-4", ComplianceStatus: types.StatusPartiallyCompliant, MaturityLevel: 3, ImplementationPercentage: 70},
	)

	ga := scorer.BuildGapAnalysis(gapFramework(), assessment, controls)

	gt.Array(t, ga.CriticalGaps).Length(2)
	gt.Array(t, ga.HighPriorityGaps).Length(1)
	gt.Value(t, ga.HighPriorityGaps[0].ControlRef).Equal("AC-3")

	// gap size 1 on a non-critical control produces no roadmap entry
	for _, entry := range ga.RemediationRoadmap {
		if entry.ControlRef == "AC-4" {
			t.Error("gap size 1 control must not appear in the roadmap")
		}
	}

	gt.Value(t, ga.ControlsByStatus[types.StatusNonCompliant]).Equal(1)
	gt.Value(t, ga.ControlsByStatus[types.StatusPartiallyCompliant]).Equal(2)
	gt.Bool(t, almostEqual(ga.OverallCompliancePercentage, (20+60+40+70)/4.0)).True()
}

func TestRemediationEffort(t *testing.T) {
	scorer := compliance.New(config.Default())

	controls := map[int64]*model.Control{
		1: gapControl(1, "T-1", types.ControlTypeTechnical, types.PriorityMedium),
		2: gapControl(2, "A-1", types.ControlTypeAdministrative, types.PriorityMedium),
		3: gapControl(3, "P-1", types.ControlTypePhysical, types.PriorityMedium),
	}

	assessment := gapAssessment(
		model.ControlAssessment{ControlID: 1, ControlRef: "T-1", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 1},
		model.ControlAssessment{ControlID: 2, ControlRef: "A-1", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 1},
		model.ControlAssessment{ControlID: 3, ControlRef: "P-1", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 1},
	)

	ga := scorer.BuildGapAnalysis(gapFramework(), assessment, controls)
	gt.Array(t, ga.CriticalGaps).Length(3)

	byRef := map[string]model.ComplianceGap{}
	for _, g := range ga.CriticalGaps {
		byRef[g.ControlRef] = g
	}

	// gap 3 x 5 days, weighted by control type, at $800/day
	gt.Bool(t, almostEqual(byRef["T-1"].EffortDays, 15*1.5)).True()
	gt.Bool(t, almostEqual(byRef["A-1"].EffortDays, 15*1.2)).True()
	gt.Bool(t, almostEqual(byRef["P-1"].EffortDays, 15)).True()
	gt.Bool(t, almostEqual(byRef["T-1"].EstimatedCost, 22.5*800)).True()
}

func TestRoadmap_QuarterlyCapacity(t *testing.T) {
	cfg := config.Default()
	scorer := compliance.New(cfg)

	// Nine technical controls with gap 3 at 22.5 days each: five fit in a
	// 120-day quarter (112.5), the sixth starts the next quarter.
	controls := make(map[int64]*model.Control, 9)
	var results []model.ControlAssessment
	for i := int64(1); i <= 9; i++ {
		ref := string(rune('A'+i-1)) + "C-1"
		controls[i] = gapControl(i, ref, types.ControlTypeTechnical, types.PriorityMedium)
		results = append(results, model.ControlAssessment{
			ControlID:        i,
			ControlRef:       ref,
			ComplianceStatus: types.StatusNonCompliant,
			MaturityLevel:    1,
		})
	}

	ga := scorer.BuildGapAnalysis(gapFramework(), gapAssessment(results...), controls)
	gt.Array(t, ga.RemediationRoadmap).Length(9)

	perQuarter := map[int]float64{}
	for _, entry := range ga.RemediationRoadmap {
		perQuarter[entry.Quarter] += entry.EffortDays
	}
	for quarter, days := range perQuarter {
		if days > cfg.QuarterlyCapacityDays {
			t.Errorf("quarter %d holds %.1f days, exceeding the %.0f day capacity",
				quarter, days, cfg.QuarterlyCapacityDays)
		}
	}
	gt.Value(t, ga.EstimatedEffort.DurationQuarters).Equal(2)
	gt.Bool(t, almostEqual(ga.EstimatedEffort.TotalEffortDays, 9*22.5)).True()
}

func TestRoadmap_OversizedGapStillScheduled(t *testing.T) {
	cfg := config.Default()
	cfg.QuarterlyCapacityDays = 10
	scorer := compliance.New(cfg)

	controls := map[int64]*model.Control{
		1: gapControl(1, "T-1", types.ControlTypeTechnical, types.PriorityMedium),
		2: gapControl(2, "T-2", types.ControlTypeTechnical, types.PriorityMedium),
	}
	assessment := gapAssessment(
		model.ControlAssessment{ControlID: 1, ControlRef: "T-1", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 1},
		model.ControlAssessment{ControlID: 2, ControlRef: "T-2", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 1},
	)

	ga := scorer.BuildGapAnalysis(gapFramework(), assessment, controls)

	// Each gap needs 22.5 days against a 10-day capacity: one per quarter,
	// each exceeding the cap alone.
	gt.Array(t, ga.RemediationRoadmap).Length(2)
	gt.Value(t, ga.RemediationRoadmap[0].Quarter).Equal(1)
	gt.Value(t, ga.RemediationRoadmap[1].Quarter).Equal(2)
}

func TestRoadmap_Ordering(t *testing.T) {
	scorer := compliance.New(config.Default())

	controls := map[int64]*model.Control{
		1: gapControl(1, "B-1", types.ControlTypePhysical, types.PriorityMedium), // gap 2
		2: gapControl(2, "A-1", types.ControlTypePhysical, types.PriorityMedium), // gap 3
		3: gapControl(3, "C-1", types.ControlTypePhysical, types.PriorityMedium), // gap 3
	}
	assessment := gapAssessment(
		model.ControlAssessment{ControlID: 1, ControlRef: "B-1", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 2},
		model.ControlAssessment{ControlID: 2, ControlRef: "A-1", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 1},
		model.ControlAssessment{ControlID: 3, ControlRef: "C-1", ComplianceStatus: types.StatusNonCompliant, MaturityLevel: 1},
	)

	ga := scorer.BuildGapAnalysis(gapFramework(), assessment, controls)

	// Largest gaps first, control ref as tie-break.
	gt.Array(t, ga.RemediationRoadmap).Length(3)
	gt.Value(t, ga.RemediationRoadmap[0].ControlRef).Equal("A-1")
	gt.Value(t, ga.RemediationRoadmap[1].ControlRef).Equal("C-1")
	gt.Value(t, ga.RemediationRoadmap[2].ControlRef).Equal("B-1")
}

func TestGap_CompliantControlsExcluded(t *testing.T) {
	scorer := compliance.New(config.Default())

	controls := map[int64]*model.Control{
		1: gapControl(1, "AC-1", types.ControlTypeTechnical, types.PriorityCritical),
	}
	assessment := gapAssessment(
		model.ControlAssessment{ControlID: 1, ControlRef: "AC-1", ComplianceStatus: types.StatusCompliant, MaturityLevel: 2},
	)

	ga := scorer.BuildGapAnalysis(gapFramework(), assessment, controls)
	gt.Array(t, ga.CriticalGaps).Length(0)
	gt.Array(t, ga.HighPriorityGaps).Length(0)
	gt.Array(t, ga.RemediationRoadmap).Length(0)
	gt.Value(t, ga.EstimatedEffort.DurationQuarters).Equal(0)
}
