package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/engine/compliance"
)

type ComplianceUseCase struct {
	repo   interfaces.Repository
	scorer *compliance.Scorer
}

func NewComplianceUseCase(repo interfaces.Repository, cfg *config.ScoringConfig) *ComplianceUseCase {
	return &ComplianceUseCase{
		repo:   repo,
		scorer: compliance.New(cfg),
	}
}

func (uc *ComplianceUseCase) CreateFramework(ctx context.Context, f *model.Framework) (*model.Framework, error) {
	if f.Name == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "framework name is required")
	}
	if f.TargetMaturity < 0 || f.TargetMaturity > 5 {
		return nil, goerr.Wrap(ErrInvalidInput, "target maturity must be within [0,5]",
			goerr.V("targetMaturity", f.TargetMaturity))
	}

	created, err := uc.repo.Framework().Create(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create framework")
	}
	return created, nil
}

func (uc *ComplianceUseCase) GetFramework(ctx context.Context, id int64) (*model.Framework, error) {
	f, err := uc.repo.Framework().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrFrameworkNotFound, "", goerr.V(FrameworkIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get framework", goerr.V(FrameworkIDKey, id))
	}
	return f, nil
}

func (uc *ComplianceUseCase) ListFrameworks(ctx context.Context) ([]*model.Framework, error) {
	frameworks, err := uc.repo.Framework().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list frameworks")
	}
	return frameworks, nil
}

func (uc *ComplianceUseCase) UpdateFramework(ctx context.Context, f *model.Framework) (*model.Framework, error) {
	if f.Name == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "framework name is required")
	}

	updated, err := uc.repo.Framework().Update(ctx, f)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrFrameworkNotFound, "", goerr.V(FrameworkIDKey, f.ID))
		}
		return nil, goerr.Wrap(err, "failed to update framework", goerr.V(FrameworkIDKey, f.ID))
	}
	return updated, nil
}

func (uc *ComplianceUseCase) DeleteFramework(ctx context.Context, id int64) error {
	if err := uc.repo.Framework().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrFrameworkNotFound, "", goerr.V(FrameworkIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete framework", goerr.V(FrameworkIDKey, id))
	}
	return nil
}

func validateControl(c *model.Control) error {
	if c.ControlID == "" {
		return goerr.Wrap(ErrInvalidInput, "control ID is required")
	}
	if !c.ControlType.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid control type", goerr.V("controlType", c.ControlType))
	}
	if c.ImplementationStatus != "" && !c.ImplementationStatus.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid implementation status", goerr.V("status", c.ImplementationStatus))
	}
	if c.Priority != "" && !c.Priority.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid priority", goerr.V("priority", c.Priority))
	}
	return nil
}

func (uc *ComplianceUseCase) CreateControl(ctx context.Context, c *model.Control) (*model.Control, error) {
	if err := validateControl(c); err != nil {
		return nil, err
	}
	if _, err := uc.GetFramework(ctx, c.FrameworkID); err != nil {
		return nil, err
	}

	created, err := uc.repo.Control().Create(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create control")
	}
	return created, nil
}

func (uc *ComplianceUseCase) GetControl(ctx context.Context, id int64) (*model.Control, error) {
	c, err := uc.repo.Control().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrControlNotFound, "", goerr.V(ControlIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get control", goerr.V(ControlIDKey, id))
	}
	return c, nil
}

func (uc *ComplianceUseCase) ListControls(ctx context.Context, frameworkID int64) ([]*model.Control, error) {
	if _, err := uc.GetFramework(ctx, frameworkID); err != nil {
		return nil, err
	}

	controls, err := uc.repo.Control().ListByFramework(ctx, frameworkID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls", goerr.V(FrameworkIDKey, frameworkID))
	}
	return controls, nil
}

func (uc *ComplianceUseCase) UpdateControl(ctx context.Context, c *model.Control) (*model.Control, error) {
	if err := validateControl(c); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Control().Update(ctx, c)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrControlNotFound, "", goerr.V(ControlIDKey, c.ID))
		}
		return nil, goerr.Wrap(err, "failed to update control", goerr.V(ControlIDKey, c.ID))
	}
	return updated, nil
}

func (uc *ComplianceUseCase) DeleteControl(ctx context.Context, id int64) error {
	if err := uc.repo.Control().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrControlNotFound, "", goerr.V(ControlIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete control", goerr.V(ControlIDKey, id))
	}
	return nil
}

func (uc *ComplianceUseCase) AddEvidence(ctx context.Context, e *model.Evidence) (*model.Evidence, error) {
	if !e.EvidenceType.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid evidence type", goerr.V("evidenceType", e.EvidenceType))
	}
	if e.CollectionDate.IsZero() {
		e.CollectionDate = time.Now().UTC()
	}

	created, err := uc.repo.Control().AddEvidence(ctx, e)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrControlNotFound, "", goerr.V(ControlIDKey, e.ControlID))
		}
		return nil, goerr.Wrap(err, "failed to add evidence", goerr.V(ControlIDKey, e.ControlID))
	}
	return created, nil
}

func (uc *ComplianceUseCase) ListEvidence(ctx context.Context, controlID int64) ([]*model.Evidence, error) {
	if _, err := uc.GetControl(ctx, controlID); err != nil {
		return nil, err
	}

	evidence, err := uc.repo.Control().ListEvidence(ctx, controlID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list evidence", goerr.V(ControlIDKey, controlID))
	}
	return evidence, nil
}

// ConductAssessment runs the compliance scoring pipeline over the in-scope
// controls of a framework and persists the resulting assessment.
func (uc *ComplianceUseCase) ConductAssessment(ctx context.Context, frameworkID int64, name, conductedBy string, scope []string) (*model.Assessment, error) {
	framework, err := uc.GetFramework(ctx, frameworkID)
	if err != nil {
		return nil, err
	}

	controls, err := uc.repo.Control().ListByFramework(ctx, frameworkID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls", goerr.V(FrameworkIDKey, frameworkID))
	}
	if len(controls) == 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "framework has no controls to assess", goerr.V(FrameworkIDKey, frameworkID))
	}

	evidenceByControl := make(map[int64][]model.Evidence, len(controls))
	for _, control := range controls {
		entries, err := uc.repo.Control().ListEvidence(ctx, control.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list evidence", goerr.V(ControlIDKey, control.ID))
		}
		for _, e := range entries {
			evidenceByControl[control.ID] = append(evidenceByControl[control.ID], *e)
		}
	}

	assessment := uc.scorer.ConductAssessment(framework, name, scope, controls, evidenceByControl)
	assessment.ConductedBy = conductedBy

	stored, err := uc.repo.Assessment().Create(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store assessment", goerr.V(FrameworkIDKey, frameworkID))
	}

	return stored, nil
}

func (uc *ComplianceUseCase) GetAssessment(ctx context.Context, id int64) (*model.Assessment, error) {
	a, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "", goerr.V("assessment_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("assessment_id", id))
	}
	return a, nil
}

func (uc *ComplianceUseCase) ListAssessments(ctx context.Context, frameworkID int64) ([]*model.Assessment, error) {
	if _, err := uc.GetFramework(ctx, frameworkID); err != nil {
		return nil, err
	}

	assessments, err := uc.repo.Assessment().ListByFramework(ctx, frameworkID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V(FrameworkIDKey, frameworkID))
	}
	return assessments, nil
}

// ConductGapAnalysis compares the latest assessment of a framework against
// its target maturity and produces a remediation roadmap.
func (uc *ComplianceUseCase) ConductGapAnalysis(ctx context.Context, frameworkID int64) (*model.GapAnalysis, error) {
	framework, err := uc.GetFramework(ctx, frameworkID)
	if err != nil {
		return nil, err
	}

	assessment, err := uc.repo.Assessment().Latest(ctx, frameworkID)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "no assessment to analyze",
				goerr.V(FrameworkIDKey, frameworkID))
		}
		return nil, goerr.Wrap(err, "failed to get latest assessment", goerr.V(FrameworkIDKey, frameworkID))
	}

	controls, err := uc.repo.Control().ListByFramework(ctx, frameworkID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls", goerr.V(FrameworkIDKey, frameworkID))
	}

	controlsByID := make(map[int64]*model.Control, len(controls))
	for _, control := range controls {
		controlsByID[control.ID] = control
	}

	return uc.scorer.BuildGapAnalysis(framework, assessment, controlsByID), nil
}
