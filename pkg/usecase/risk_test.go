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

func validRisk() *model.Risk {
	return &model.Risk{
		Title:              "Customer data breach",
		Description:        "Unauthorized access to customer PII through compromised credentials",
		Category:           types.RiskCategorySecurity,
		BusinessUnit:       "operations",
		InherentLikelihood: types.LikelihoodHigh,
		InherentImpact:     types.ImpactMajor,
	}
}

func TestRiskUseCase_CreateRisk(t *testing.T) {
	t.Run("create risk with valid fields", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, validRisk())
		gt.NoError(t, err).Required()

		gt.Number(t, created.ID).NotEqual(0)
		gt.Value(t, created.Title).Equal("Customer data breach")
		gt.Value(t, created.Category).Equal(types.RiskCategorySecurity)
	})

	t.Run("reject risk without title", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		r := validRisk()
		r.Title = ""
		_, err := uc.Risk.CreateRisk(ctx, r)
		gt.Error(t, err)
	})

	t.Run("reject invalid category", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		r := validRisk()
		r.Category = "nonsense"
		_, err := uc.Risk.CreateRisk(ctx, r)
		gt.Error(t, err)
	})

	t.Run("reject invalid likelihood", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		r := validRisk()
		r.InherentLikelihood = "impossible"
		_, err := uc.Risk.CreateRisk(ctx, r)
		gt.Error(t, err)
	})

	t.Run("reject inverted financial range", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		low := 100000.0
		high := 500000.0
		r := validRisk()
		r.FinancialImpactMin = &high
		r.FinancialImpactMax = &low
		_, err := uc.Risk.CreateRisk(ctx, r)
		gt.Error(t, err)
	})
}

func TestRiskUseCase_GetRisk(t *testing.T) {
	t.Run("returns ErrRiskNotFound for unknown ID", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		_, err := uc.Risk.GetRisk(ctx, 99999)
		gt.Bool(t, errors.Is(err, usecase.ErrRiskNotFound)).True()
	})
}

func TestRiskUseCase_AssessRisk(t *testing.T) {
	t.Run("assess records score history", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, validRisk())
		gt.NoError(t, err).Required()

		score, err := uc.Risk.AssessRisk(ctx, created.ID, types.MethodologySimpleMultiplication, nil)
		gt.NoError(t, err).Required()

		gt.Value(t, score.RiskID).Equal(created.ID)
		gt.Value(t, score.Methodology).Equal("simple_multiplication")
		gt.Number(t, score.OverallScore).NotEqual(0.0)

		history, err := uc.Risk.GetScoreHistory(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(1)
	})

	t.Run("assess unknown risk fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		_, err := uc.Risk.AssessRisk(ctx, 404, types.MethodologySimpleMultiplication, nil)
		gt.Bool(t, errors.Is(err, usecase.ErrRiskNotFound)).True()
	})

	t.Run("stored expert judgment feeds expert methodology", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, validRisk())
		gt.NoError(t, err).Required()

		err = uc.Risk.SetExpertJudgment(ctx, &model.ExpertJudgment{
			RiskID:          created.ID,
			AssessorID:      "assessor-1",
			AssessorQuality: 0.9,
			Rationale:       "long operational history with this vendor",
			Criteria:        []string{"history", "incidents"},
			DataSources:     []string{"siem"},
			Validated:       true,
		})
		gt.NoError(t, err).Required()

		score, err := uc.Risk.AssessRisk(ctx, created.ID, types.MethodologyExpertJudgment, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, score.Methodology).Equal("expert_judgment")
		gt.Value(t, score.FallbackReason).Equal("")
	})

	t.Run("expert methodology without judgment falls back", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, validRisk())
		gt.NoError(t, err).Required()

		score, err := uc.Risk.AssessRisk(ctx, created.ID, types.MethodologyExpertJudgment, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, score.Methodology).Equal("simple_multiplication")
		gt.String(t, score.FallbackReason).NotEqual("")
	})
}

func TestRiskUseCase_AssessResidualRisk(t *testing.T) {
	t.Run("residual ratings are scored when present", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		r := validRisk()
		r.ResidualLikelihood = types.LikelihoodLow
		r.ResidualImpact = types.ImpactMinor
		created, err := uc.Risk.CreateRisk(ctx, r)
		gt.NoError(t, err).Required()

		score, err := uc.Risk.AssessResidualRisk(ctx, created.ID, types.MethodologySimpleMultiplication, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, score.Methodology).Equal("residual_simple_multiplication")

		inherent, err := uc.Risk.AssessRisk(ctx, created.ID, types.MethodologySimpleMultiplication, nil)
		gt.NoError(t, err).Required()
		if score.OverallScore >= inherent.OverallScore {
			t.Errorf("expected residual score %v below inherent score %v",
				score.OverallScore, inherent.OverallScore)
		}
	})
}

func TestRiskUseCase_BulkAssessRisks(t *testing.T) {
	t.Run("mixes scores and per-risk errors", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, validRisk())
		gt.NoError(t, err).Required()

		results, err := uc.Risk.BulkAssessRisks(ctx, []int64{created.ID, 999},
			types.MethodologySimpleMultiplication, nil)
		gt.NoError(t, err).Required()
		gt.Number(t, len(results)).Equal(2)

		ok := results[created.ID]
		gt.Value(t, ok.Error).Equal("")
		if ok.Score == nil {
			t.Fatal("expected score for existing risk")
		}

		missing := results[999]
		gt.Value(t, missing.Error).Equal("risk not found")
		if missing.Score != nil {
			t.Error("expected no score for missing risk")
		}

		// Successful scores land in history
		history, err := uc.Risk.GetScoreHistory(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(1)
	})
}

func TestRiskUseCase_SetExpertJudgment(t *testing.T) {
	t.Run("reject out-of-range assessor quality", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, validRisk())
		gt.NoError(t, err).Required()

		err = uc.Risk.SetExpertJudgment(ctx, &model.ExpertJudgment{
			RiskID:          created.ID,
			AssessorID:      "assessor-1",
			AssessorQuality: 1.5,
		})
		gt.Error(t, err)
	})

	t.Run("reject judgment for unknown risk", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		err := uc.Risk.SetExpertJudgment(ctx, &model.ExpertJudgment{
			RiskID:          42,
			AssessorID:      "assessor-1",
			AssessorQuality: 0.5,
		})
		gt.Bool(t, errors.Is(err, usecase.ErrRiskNotFound)).True()
	})
}
