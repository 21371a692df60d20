package usecase

import (
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
)

type UseCases struct {
	repo          interfaces.Repository
	scoringConfig *config.ScoringConfig
	Risk          *RiskUseCase
	Compliance    *ComplianceUseCase
}

type Option func(*UseCases)

func WithScoringConfig(cfg *config.ScoringConfig) Option {
	return func(uc *UseCases) {
		uc.scoringConfig = cfg
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Risk = NewRiskUseCase(repo, uc.scoringConfig)
	uc.Compliance = NewComplianceUseCase(repo, uc.scoringConfig)

	return uc
}
