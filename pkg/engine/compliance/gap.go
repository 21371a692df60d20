package compliance

import (
	"sort"
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// BuildGapAnalysis compares the control assessments of one assessment run
// against the framework's target maturity and produces prioritized gaps
// with a quarterly remediation roadmap.
func (s *Scorer) BuildGapAnalysis(framework *model.Framework, assessment *model.Assessment, controls map[int64]*model.Control) *model.GapAnalysis {
	target := framework.TargetMaturity
	if target == 0 {
		target = s.cfg.TargetMaturity
	}

	ga := &model.GapAnalysis{
		FrameworkID:      framework.ID,
		AssessmentID:     assessment.ID,
		ControlsByStatus: make(map[types.ImplementationStatus]int),
		GeneratedAt:      time.Now().UTC(),
	}

	var totalImplementation float64
	for _, ca := range assessment.ControlAssessments {
		ga.ControlsByStatus[ca.ComplianceStatus]++
		totalImplementation += ca.ImplementationPercentage

		if ca.ComplianceStatus == types.StatusCompliant {
			continue
		}

		control, ok := controls[ca.ControlID]
		if !ok {
			continue
		}

		gapSize := target - ca.MaturityLevel
		if gapSize <= 0 {
			continue
		}

		gap := model.ComplianceGap{
			ControlID:       ca.ControlID,
			ControlRef:      ca.ControlRef,
			ControlType:     control.ControlType,
			Priority:        control.Priority,
			CurrentMaturity: ca.MaturityLevel,
			TargetMaturity:  target,
			GapSize:         gapSize,
		}
		gap.EffortDays = s.remediationEffort(gap)
		gap.EstimatedCost = gap.EffortDays * s.cfg.RemediationDailyRate

		// gap size 1 on a non-critical control is below the roadmap
		// threshold and produces no entry at all.
		switch {
		case control.Priority == types.PriorityCritical || gapSize >= 3:
			ga.CriticalGaps = append(ga.CriticalGaps, gap)
		case gapSize >= 2:
			ga.HighPriorityGaps = append(ga.HighPriorityGaps, gap)
		}
	}

	if n := len(assessment.ControlAssessments); n > 0 {
		ga.OverallCompliancePercentage = totalImplementation / float64(n)
	}

	ga.RemediationRoadmap, ga.EstimatedEffort = s.buildRoadmap(append(append([]model.ComplianceGap{}, ga.CriticalGaps...), ga.HighPriorityGaps...))

	return ga
}

// remediationEffort estimates the working days to close a gap: five days
// per maturity level, weighted by control type.
func (s *Scorer) remediationEffort(gap model.ComplianceGap) float64 {
	days := float64(gap.GapSize) * 5
	switch gap.ControlType {
	case types.ControlTypeTechnical:
		days *= 1.5
	case types.ControlTypeAdministrative:
		days *= 1.2
	}
	return days
}

// buildRoadmap assigns gaps to quarters, largest gaps first, packing each
// quarter up to the configured capacity. A single gap whose effort exceeds
// the capacity still lands in a quarter by itself; the capacity constrains
// aggregate assignment, not single-item size.
func (s *Scorer) buildRoadmap(gaps []model.ComplianceGap) ([]model.RoadmapEntry, model.RemediationEstimate) {
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].GapSize != gaps[j].GapSize {
			return gaps[i].GapSize > gaps[j].GapSize
		}
		return gaps[i].ControlRef < gaps[j].ControlRef
	})

	capacity := s.cfg.QuarterlyCapacityDays
	quarter := 1
	var used float64

	var roadmap []model.RoadmapEntry
	var estimate model.RemediationEstimate

	for _, gap := range gaps {
		if used > 0 && used+gap.EffortDays > capacity {
			quarter++
			used = 0
		}

		roadmap = append(roadmap, model.RoadmapEntry{
			ControlRef: gap.ControlRef,
			Quarter:    quarter,
			EffortDays: gap.EffortDays,
			Cost:       gap.EstimatedCost,
		})

		used += gap.EffortDays
		estimate.TotalEffortDays += gap.EffortDays
		estimate.TotalCost += gap.EstimatedCost
	}

	if len(roadmap) > 0 {
		estimate.DurationQuarters = quarter
	}

	return roadmap, estimate
}
