package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/repository/firestore"
	"github.com/secmon-lab/briareus/pkg/repository/memory"
)

func runScoreRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put stores score and assigns ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		score := &model.RiskScore{
			RiskID:          1,
			LikelihoodScore: 6.5,
			ImpactScore:     7.0,
			OverallScore:    45.5,
			Priority:        types.PriorityCritical,
			ConfidenceLevel: 0.72,
			Methodology:     "simple_multiplication",
			CalculationDetails: map[string]interface{}{
				"trend_factor": 1.0,
			},
		}

		stored, err := repo.Score().Put(ctx, score)
		if err != nil {
			t.Fatalf("failed to store score: %v", err)
		}

		if stored.ID == 0 {
			t.Error("expected non-zero score ID")
		}
		if stored.OverallScore != 45.5 {
			t.Errorf("expected overall score=45.5, got %v", stored.OverallScore)
		}
		if stored.AssessedAt.IsZero() {
			t.Error("expected non-zero AssessedAt")
		}
	})

	t.Run("List returns score history newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
		for i := 0; i < 3; i++ {
			_, err := repo.Score().Put(ctx, &model.RiskScore{
				RiskID:       7,
				OverallScore: float64(i + 1),
				Priority:     types.PriorityLow,
				Methodology:  "simple_multiplication",
				AssessedAt:   base.Add(time.Duration(i) * time.Minute),
			})
			if err != nil {
				t.Fatalf("failed to store score %d: %v", i, err)
			}
		}

		// Score of another risk must not appear
		if _, err := repo.Score().Put(ctx, &model.RiskScore{
			RiskID:       8,
			OverallScore: 99,
			Priority:     types.PriorityCritical,
			Methodology:  "quantitative",
			AssessedAt:   base,
		}); err != nil {
			t.Fatalf("failed to store score for other risk: %v", err)
		}

		scores, err := repo.Score().List(ctx, 7)
		if err != nil {
			t.Fatalf("failed to list scores: %v", err)
		}
		if len(scores) != 3 {
			t.Fatalf("expected 3 scores, got %d", len(scores))
		}
		for i := 1; i < len(scores); i++ {
			if scores[i].AssessedAt.After(scores[i-1].AssessedAt) {
				t.Error("expected scores ordered newest first")
			}
		}
		if scores[0].OverallScore != 3 {
			t.Errorf("expected newest score=3, got %v", scores[0].OverallScore)
		}
	})

	t.Run("Latest returns most recent score", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
		for i := 0; i < 2; i++ {
			if _, err := repo.Score().Put(ctx, &model.RiskScore{
				RiskID:       3,
				OverallScore: float64(10 * (i + 1)),
				Priority:     types.PriorityHigh,
				Methodology:  "weighted_average",
				AssessedAt:   base.Add(time.Duration(i) * time.Minute),
			}); err != nil {
				t.Fatalf("failed to store score %d: %v", i, err)
			}
		}

		latest, err := repo.Score().Latest(ctx, 3)
		if err != nil {
			t.Fatalf("failed to get latest score: %v", err)
		}
		if latest.OverallScore != 20 {
			t.Errorf("expected latest score=20, got %v", latest.OverallScore)
		}
	})

	t.Run("Latest returns error when no score recorded", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Score().Latest(ctx, 12345)
		if err == nil {
			t.Error("expected error for unknown risk")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("PutJudgment replaces previous record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := &model.ExpertJudgment{
			RiskID:          5,
			AssessorID:      "assessor-1",
			AssessorQuality: 0.6,
			Rationale:       "initial review",
			Criteria:        []string{"history"},
			AssessedAt:      time.Now().UTC().Truncate(time.Second),
		}
		if err := repo.Score().PutJudgment(ctx, first); err != nil {
			t.Fatalf("failed to store judgment: %v", err)
		}

		second := &model.ExpertJudgment{
			RiskID:          5,
			AssessorID:      "assessor-2",
			AssessorQuality: 0.9,
			Rationale:       "updated after incident review",
			Criteria:        []string{"history", "incidents"},
			DataSources:     []string{"siem"},
			Validated:       true,
			AssessedAt:      time.Now().UTC().Truncate(time.Second),
		}
		if err := repo.Score().PutJudgment(ctx, second); err != nil {
			t.Fatalf("failed to replace judgment: %v", err)
		}

		retrieved, err := repo.Score().GetJudgment(ctx, 5)
		if err != nil {
			t.Fatalf("failed to get judgment: %v", err)
		}
		if retrieved.AssessorID != "assessor-2" {
			t.Errorf("expected assessor-2, got %s", retrieved.AssessorID)
		}
		if !retrieved.Validated {
			t.Error("expected validated judgment")
		}
		if len(retrieved.Criteria) != 2 {
			t.Errorf("expected 2 criteria, got %d", len(retrieved.Criteria))
		}
	})

	t.Run("GetJudgment returns error when absent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Score().GetJudgment(ctx, 999)
		if err == nil {
			t.Error("expected error for missing judgment")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemoryScoreRepository(t *testing.T) {
	runScoreRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreScoreRepository(t *testing.T) {
	runScoreRepositoryTest(t, newFirestoreRepository)
}
