package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/repository/memory"
	"github.com/secmon-lab/briareus/pkg/usecase"
)

func setupFramework(t *testing.T, uc *usecase.UseCases) *model.Framework {
	t.Helper()

	framework, err := uc.Compliance.CreateFramework(context.Background(), &model.Framework{
		Name:           "NIST 800-53",
		Version:        "rev5",
		TargetMaturity: 4,
	})
	gt.NoError(t, err).Required()
	return framework
}

func TestComplianceUseCase_Frameworks(t *testing.T) {
	t.Run("create and retrieve framework", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)

		retrieved, err := uc.Compliance.GetFramework(context.Background(), framework.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Name).Equal("NIST 800-53")
		gt.Number(t, retrieved.TargetMaturity).Equal(4)
	})

	t.Run("reject framework without name", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Compliance.CreateFramework(context.Background(), &model.Framework{})
		gt.Error(t, err)
	})

	t.Run("reject out-of-range target maturity", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Compliance.CreateFramework(context.Background(), &model.Framework{
			Name:           "SOC 2",
			TargetMaturity: 9,
		})
		gt.Error(t, err)
	})

	t.Run("GetFramework returns ErrFrameworkNotFound", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Compliance.GetFramework(context.Background(), 42)
		gt.Bool(t, errors.Is(err, usecase.ErrFrameworkNotFound)).True()
	})
}

func TestComplianceUseCase_Controls(t *testing.T) {
	t.Run("create control under framework", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)
		ctx := context.Background()

		control, err := uc.Compliance.CreateControl(ctx, &model.Control{
			FrameworkID:          framework.ID,
			ControlID:            "AC-2",
			ControlFamily:        "AC",
			Title:                "Account Management",
			ControlType:          types.ControlTypeTechnical,
			ImplementationStatus: types.StatusPartiallyCompliant,
		})
		gt.NoError(t, err).Required()
		gt.Number(t, control.ID).NotEqual(0)

		controls, err := uc.Compliance.ListControls(ctx, framework.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, controls).Length(1)
	})

	t.Run("reject control for unknown framework", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Compliance.CreateControl(context.Background(), &model.Control{
			FrameworkID: 42,
			ControlID:   "AC-1",
			ControlType: types.ControlTypeTechnical,
		})
		gt.Bool(t, errors.Is(err, usecase.ErrFrameworkNotFound)).True()
	})

	t.Run("reject control with invalid type", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)

		_, err := uc.Compliance.CreateControl(context.Background(), &model.Control{
			FrameworkID: framework.ID,
			ControlID:   "AC-1",
			ControlType: "quantum",
		})
		gt.Error(t, err)
	})

	t.Run("attach and list evidence", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)
		ctx := context.Background()

		control, err := uc.Compliance.CreateControl(ctx, &model.Control{
			FrameworkID: framework.ID,
			ControlID:   "AC-2",
			ControlType: types.ControlTypeTechnical,
		})
		gt.NoError(t, err).Required()

		evidence, err := uc.Compliance.AddEvidence(ctx, &model.Evidence{
			ControlID:    control.ID,
			EvidenceType: types.EvidenceTypeTestResult,
			Description:  "quarterly access review",
			Validated:    true,
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, evidence.CollectionDate.IsZero()).False()

		listed, err := uc.Compliance.ListEvidence(ctx, control.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(1)
	})

	t.Run("reject evidence with invalid type", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Compliance.AddEvidence(context.Background(), &model.Evidence{
			ControlID:    1,
			EvidenceType: "hearsay",
		})
		gt.Error(t, err)
	})
}

func TestComplianceUseCase_ConductAssessment(t *testing.T) {
	seedControls := func(t *testing.T, uc *usecase.UseCases, frameworkID int64) {
		t.Helper()
		ctx := context.Background()

		for _, c := range []model.Control{
			{FrameworkID: frameworkID, ControlID: "AC-1", ControlFamily: "AC", ControlType: types.ControlTypeAdministrative, ImplementationStatus: types.StatusCompliant},
			{FrameworkID: frameworkID, ControlID: "AC-2", ControlFamily: "AC", ControlType: types.ControlTypeTechnical, ImplementationStatus: types.StatusPartiallyCompliant},
			{FrameworkID: frameworkID, ControlID: "IR-4", ControlFamily: "IR", ControlType: types.ControlTypeCorrective, ImplementationStatus: types.StatusNonCompliant},
		} {
			control := c
			_, err := uc.Compliance.CreateControl(ctx, &control)
			gt.NoError(t, err).Required()
		}
	}

	t.Run("assessment covers in-scope controls and persists", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)
		seedControls(t, uc, framework.ID)
		ctx := context.Background()

		assessment, err := uc.Compliance.ConductAssessment(ctx, framework.ID, "Q3 access review", "auditor-1", []string{"AC"})
		gt.NoError(t, err).Required()

		gt.Number(t, assessment.ID).NotEqual(0)
		gt.Value(t, assessment.ConductedBy).Equal("auditor-1")
		gt.Array(t, assessment.ControlAssessments).Length(2)

		retrieved, err := uc.Compliance.GetAssessment(ctx, assessment.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Name).Equal("Q3 access review")

		listed, err := uc.Compliance.ListAssessments(ctx, framework.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(1)
	})

	t.Run("empty scope assesses every control", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)
		seedControls(t, uc, framework.ID)

		assessment, err := uc.Compliance.ConductAssessment(context.Background(), framework.ID, "annual", "auditor-1", nil)
		gt.NoError(t, err).Required()
		gt.Array(t, assessment.ControlAssessments).Length(3)
	})

	t.Run("framework without controls fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)

		_, err := uc.Compliance.ConductAssessment(context.Background(), framework.ID, "empty", "auditor-1", nil)
		gt.Error(t, err)
	})
}

func TestComplianceUseCase_ConductGapAnalysis(t *testing.T) {
	t.Run("gap analysis uses latest assessment", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)
		ctx := context.Background()

		_, err := uc.Compliance.CreateControl(ctx, &model.Control{
			FrameworkID:          framework.ID,
			ControlID:            "AC-1",
			ControlFamily:        "AC",
			ControlType:          types.ControlTypeTechnical,
			ImplementationStatus: types.StatusNonCompliant,
			Priority:             types.PriorityHigh,
		})
		gt.NoError(t, err).Required()

		_, err = uc.Compliance.ConductAssessment(ctx, framework.ID, "baseline", "auditor-1", nil)
		gt.NoError(t, err).Required()

		ga, err := uc.Compliance.ConductGapAnalysis(ctx, framework.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, ga.FrameworkID).Equal(framework.ID)
		gt.Array(t, ga.CriticalGaps).Length(1)
		gt.Array(t, ga.RemediationRoadmap).Length(1)
	})

	t.Run("gap analysis without assessment fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		framework := setupFramework(t, uc)

		_, err := uc.Compliance.ConductGapAnalysis(context.Background(), framework.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrAssessmentNotFound)).True()
	})
}
