package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type scoreDocument struct {
	ID     int64 `firestore:"id"`
	RiskID int64 `firestore:"risk_id"`

	LikelihoodScore float64 `firestore:"likelihood_score"`
	ImpactScore     float64 `firestore:"impact_score"`
	OverallScore    float64 `firestore:"overall_score"`
	Priority        string  `firestore:"priority"`
	ConfidenceLevel float64 `firestore:"confidence_level"`
	Methodology     string  `firestore:"methodology"`
	FallbackReason  string  `firestore:"fallback_reason"`

	CalculationDetails map[string]interface{} `firestore:"calculation_details"`

	AssessedAt time.Time `firestore:"assessed_at"`
}

func toScoreDocument(score *model.RiskScore) *scoreDocument {
	return &scoreDocument{
		ID:                 score.ID,
		RiskID:             score.RiskID,
		LikelihoodScore:    score.LikelihoodScore,
		ImpactScore:        score.ImpactScore,
		OverallScore:       score.OverallScore,
		Priority:           score.Priority.String(),
		ConfidenceLevel:    score.ConfidenceLevel,
		Methodology:        score.Methodology,
		FallbackReason:     score.FallbackReason,
		CalculationDetails: score.CalculationDetails,
		AssessedAt:         score.AssessedAt,
	}
}

func (d *scoreDocument) toModel() *model.RiskScore {
	return &model.RiskScore{
		ID:                 d.ID,
		RiskID:             d.RiskID,
		LikelihoodScore:    d.LikelihoodScore,
		ImpactScore:        d.ImpactScore,
		OverallScore:       d.OverallScore,
		Priority:           types.Priority(d.Priority),
		ConfidenceLevel:    d.ConfidenceLevel,
		Methodology:        d.Methodology,
		FallbackReason:     d.FallbackReason,
		CalculationDetails: d.CalculationDetails,
		AssessedAt:         d.AssessedAt,
	}
}

type judgmentDocument struct {
	RiskID          int64     `firestore:"risk_id"`
	AssessorID      string    `firestore:"assessor_id"`
	AssessorQuality float64   `firestore:"assessor_quality"`
	Rationale       string    `firestore:"rationale"`
	Criteria        []string  `firestore:"criteria"`
	DataSources     []string  `firestore:"data_sources"`
	Validated       bool      `firestore:"validated"`
	AssessedAt      time.Time `firestore:"assessed_at"`
}

type scoreRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newScoreRepository(client *firestore.Client) *scoreRepository {
	return &scoreRepository{client: client}
}

func (r *scoreRepository) scoresCollection() string {
	return collectionName(r.collectionPrefix, "risk_scores")
}

func (r *scoreRepository) judgmentsCollection() string {
	return collectionName(r.collectionPrefix, "expert_judgments")
}

func (r *scoreRepository) counterCollection() string {
	return collectionName(r.collectionPrefix, "counters")
}

func (r *scoreRepository) Put(ctx context.Context, score *model.RiskScore) (*model.RiskScore, error) {
	id, err := nextCounterValue(ctx, r.client, r.counterCollection(), "score_counter")
	if err != nil {
		return nil, err
	}

	doc := toScoreDocument(score)
	doc.ID = id
	if doc.AssessedAt.IsZero() {
		doc.AssessedAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.scoresCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to store score", goerr.V("riskID", score.RiskID))
	}

	return doc.toModel(), nil
}

func (r *scoreRepository) List(ctx context.Context, riskID int64) ([]*model.RiskScore, error) {
	iter := r.client.Collection(r.scoresCollection()).
		Where("risk_id", "==", riskID).
		Documents(ctx)
	defer iter.Stop()

	var scores []*model.RiskScore
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate scores", goerr.V("riskID", riskID))
		}

		var scoreDoc scoreDocument
		if err := doc.DataTo(&scoreDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal score")
		}

		scores = append(scores, scoreDoc.toModel())
	}

	// Newest first
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].AssessedAt.After(scores[j].AssessedAt)
	})

	return scores, nil
}

func (r *scoreRepository) Latest(ctx context.Context, riskID int64) (*model.RiskScore, error) {
	scores, err := r.List(ctx, riskID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "no score recorded for risk", goerr.V("riskID", riskID))
	}
	return scores[0], nil
}

func (r *scoreRepository) PutJudgment(ctx context.Context, judgment *model.ExpertJudgment) error {
	doc := &judgmentDocument{
		RiskID:          judgment.RiskID,
		AssessorID:      judgment.AssessorID,
		AssessorQuality: judgment.AssessorQuality,
		Rationale:       judgment.Rationale,
		Criteria:        judgment.Criteria,
		DataSources:     judgment.DataSources,
		Validated:       judgment.Validated,
		AssessedAt:      judgment.AssessedAt,
	}

	docRef := r.client.Collection(r.judgmentsCollection()).Doc(fmt.Sprintf("%d", judgment.RiskID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to store expert judgment", goerr.V("riskID", judgment.RiskID))
	}

	return nil
}

func (r *scoreRepository) GetJudgment(ctx context.Context, riskID int64) (*model.ExpertJudgment, error) {
	docRef := r.client.Collection(r.judgmentsCollection()).Doc(fmt.Sprintf("%d", riskID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "expert judgment not found", goerr.V("riskID", riskID))
		}
		return nil, goerr.Wrap(err, "failed to get expert judgment", goerr.V("riskID", riskID))
	}

	var judgmentDoc judgmentDocument
	if err := doc.DataTo(&judgmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal expert judgment", goerr.V("riskID", riskID))
	}

	return &model.ExpertJudgment{
		RiskID:          judgmentDoc.RiskID,
		AssessorID:      judgmentDoc.AssessorID,
		AssessorQuality: judgmentDoc.AssessorQuality,
		Rationale:       judgmentDoc.Rationale,
		Criteria:        judgmentDoc.Criteria,
		DataSources:     judgmentDoc.DataSources,
		Validated:       judgmentDoc.Validated,
		AssessedAt:      judgmentDoc.AssessedAt,
	}, nil
}
