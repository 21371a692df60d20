package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/engine/risk"
	"github.com/secmon-lab/briareus/pkg/repository/firestore"
	"github.com/secmon-lab/briareus/pkg/repository/memory"
)

type RiskUseCase struct {
	repo   interfaces.Repository
	scorer *risk.Scorer
}

func NewRiskUseCase(repo interfaces.Repository, cfg *config.ScoringConfig) *RiskUseCase {
	return &RiskUseCase{
		repo:   repo,
		scorer: risk.New(cfg),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

func validateRisk(r *model.Risk) error {
	if r.Title == "" {
		return goerr.Wrap(ErrInvalidInput, "risk title is required")
	}
	if !r.Category.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid risk category", goerr.V("category", r.Category))
	}
	if !r.InherentLikelihood.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid inherent likelihood", goerr.V("likelihood", r.InherentLikelihood))
	}
	if !r.InherentImpact.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid inherent impact", goerr.V("impact", r.InherentImpact))
	}
	if r.ResidualLikelihood != "" && !r.ResidualLikelihood.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid residual likelihood", goerr.V("likelihood", r.ResidualLikelihood))
	}
	if r.ResidualImpact != "" && !r.ResidualImpact.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid residual impact", goerr.V("impact", r.ResidualImpact))
	}
	if !r.GeographicScope.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid geographic scope", goerr.V("scope", r.GeographicScope))
	}
	if !r.Trend.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid risk trend", goerr.V("trend", r.Trend))
	}
	if r.HasFinancialData() && *r.FinancialImpactMax < *r.FinancialImpactMin {
		return goerr.Wrap(ErrInvalidInput, "financial impact max must not be less than min",
			goerr.V("min", *r.FinancialImpactMin), goerr.V("max", *r.FinancialImpactMax))
	}
	if r.IncidentCount < 0 {
		return goerr.Wrap(ErrInvalidInput, "incident count must not be negative", goerr.V("count", r.IncidentCount))
	}
	return nil
}

func (uc *RiskUseCase) CreateRisk(ctx context.Context, r *model.Risk) (*model.Risk, error) {
	if err := validateRisk(r); err != nil {
		return nil, err
	}

	created, err := uc.repo.Risk().Create(ctx, r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	return created, nil
}

func (uc *RiskUseCase) GetRisk(ctx context.Context, id int64) (*model.Risk, error) {
	r, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrRiskNotFound, "", goerr.V(RiskIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, id))
	}
	return r, nil
}

func (uc *RiskUseCase) ListRisks(ctx context.Context) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}
	return risks, nil
}

func (uc *RiskUseCase) UpdateRisk(ctx context.Context, r *model.Risk) (*model.Risk, error) {
	if err := validateRisk(r); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Risk().Update(ctx, r)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrRiskNotFound, "", goerr.V(RiskIDKey, r.ID))
		}
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V(RiskIDKey, r.ID))
	}

	return updated, nil
}

func (uc *RiskUseCase) DeleteRisk(ctx context.Context, id int64) error {
	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrRiskNotFound, "", goerr.V(RiskIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete risk", goerr.V(RiskIDKey, id))
	}
	return nil
}

// AssessRisk scores a risk with the requested methodology and records the
// result in the risk's score history. The stored expert judgment record is
// supplied to the scorer when present.
func (uc *RiskUseCase) AssessRisk(ctx context.Context, riskID int64, method types.Methodology, rctx *model.RiskContext) (*model.RiskScore, error) {
	r, err := uc.GetRisk(ctx, riskID)
	if err != nil {
		return nil, err
	}

	opts := uc.assessOptions(ctx, riskID, rctx)
	score, err := uc.scorer.Assess(ctx, r, method, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to assess risk", goerr.V(RiskIDKey, riskID))
	}

	stored, err := uc.repo.Score().Put(ctx, score)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store score", goerr.V(RiskIDKey, riskID))
	}

	return stored, nil
}

// AssessResidualRisk scores the risk's residual ratings. When residual
// ratings are absent the inherent ratings are scored instead.
func (uc *RiskUseCase) AssessResidualRisk(ctx context.Context, riskID int64, method types.Methodology, rctx *model.RiskContext) (*model.RiskScore, error) {
	r, err := uc.GetRisk(ctx, riskID)
	if err != nil {
		return nil, err
	}

	opts := uc.assessOptions(ctx, riskID, rctx)
	score, err := uc.scorer.Residual(ctx, r, method, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to assess residual risk", goerr.V(RiskIDKey, riskID))
	}

	stored, err := uc.repo.Score().Put(ctx, score)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store score", goerr.V(RiskIDKey, riskID))
	}

	return stored, nil
}

// BulkAssessRisks assesses the named risks concurrently. Risks that cannot
// be loaded or scored yield an error entry; the rest are scored and their
// scores recorded. The result map always has one entry per requested ID.
func (uc *RiskUseCase) BulkAssessRisks(ctx context.Context, riskIDs []int64, method types.Methodology, rctx *model.RiskContext) (map[int64]model.BulkScoreResult, error) {
	results := make(map[int64]model.BulkScoreResult, len(riskIDs))

	var risks []*model.Risk
	for _, id := range riskIDs {
		if _, done := results[id]; done {
			continue
		}
		r, err := uc.repo.Risk().Get(ctx, id)
		if err != nil {
			if isNotFound(err) {
				results[id] = model.BulkScoreResult{Error: "risk not found"}
				continue
			}
			return nil, goerr.Wrap(err, "failed to load risk", goerr.V(RiskIDKey, id))
		}
		risks = append(risks, r)
	}

	var opts []risk.AssessOption
	if rctx != nil {
		opts = append(opts, risk.WithBusinessContext(rctx))
	}

	for id, result := range uc.scorer.BulkAssess(ctx, risks, method, opts...) {
		if result.Score != nil {
			stored, err := uc.repo.Score().Put(ctx, result.Score)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to store score", goerr.V(RiskIDKey, id))
			}
			result.Score = stored
		}
		results[id] = result
	}

	return results, nil
}

// GetScoreHistory returns the recorded scores of a risk, newest first.
func (uc *RiskUseCase) GetScoreHistory(ctx context.Context, riskID int64) ([]*model.RiskScore, error) {
	if _, err := uc.GetRisk(ctx, riskID); err != nil {
		return nil, err
	}

	scores, err := uc.repo.Score().List(ctx, riskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list scores", goerr.V(RiskIDKey, riskID))
	}
	return scores, nil
}

// SetExpertJudgment records the expert judgment used by subsequent
// expert_judgment assessments of the risk.
func (uc *RiskUseCase) SetExpertJudgment(ctx context.Context, judgment *model.ExpertJudgment) error {
	if judgment.AssessorID == "" {
		return goerr.Wrap(ErrInvalidInput, "assessor ID is required")
	}
	if judgment.AssessorQuality < 0 || judgment.AssessorQuality > 1 {
		return goerr.Wrap(ErrInvalidInput, "assessor quality must be within [0,1]",
			goerr.V("quality", judgment.AssessorQuality))
	}

	if _, err := uc.GetRisk(ctx, judgment.RiskID); err != nil {
		return err
	}

	if err := uc.repo.Score().PutJudgment(ctx, judgment); err != nil {
		return goerr.Wrap(err, "failed to store expert judgment", goerr.V(RiskIDKey, judgment.RiskID))
	}
	return nil
}

func (uc *RiskUseCase) assessOptions(ctx context.Context, riskID int64, rctx *model.RiskContext) []risk.AssessOption {
	var opts []risk.AssessOption
	if rctx != nil {
		opts = append(opts, risk.WithBusinessContext(rctx))
	}
	if judgment, err := uc.repo.Score().GetJudgment(ctx, riskID); err == nil {
		opts = append(opts, risk.WithExpertJudgment(judgment))
	}
	return opts
}
