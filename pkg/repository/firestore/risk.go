package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type riskDocument struct {
	ID          int64  `firestore:"id"`
	Title       string `firestore:"title"`
	Description string `firestore:"description"`
	Category    string `firestore:"category"`

	BusinessUnit    string `firestore:"business_unit"`
	ProcessArea     string `firestore:"process_area"`
	GeographicScope string `firestore:"geographic_scope"`
	Trend           string `firestore:"trend"`

	InherentLikelihood string `firestore:"inherent_likelihood"`
	InherentImpact     string `firestore:"inherent_impact"`
	ResidualLikelihood string `firestore:"residual_likelihood"`
	ResidualImpact     string `firestore:"residual_impact"`

	FinancialImpactMin *float64 `firestore:"financial_impact_min"`
	FinancialImpactMax *float64 `firestore:"financial_impact_max"`

	RegulatoryRequirements []string `firestore:"regulatory_requirements"`
	ExternalDependencies   []string `firestore:"external_dependencies"`
	AffectedAssets         []string `firestore:"affected_assets"`
	ControlIDs             []int64  `firestore:"control_ids"`
	IncidentCount          int      `firestore:"incident_count"`

	OwnerID        string     `firestore:"owner_id"`
	LastReviewDate *time.Time `firestore:"last_review_date"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toRiskDocument(risk *model.Risk) *riskDocument {
	return &riskDocument{
		ID:                     risk.ID,
		Title:                  risk.Title,
		Description:            risk.Description,
		Category:               risk.Category.String(),
		BusinessUnit:           risk.BusinessUnit,
		ProcessArea:            risk.ProcessArea,
		GeographicScope:        risk.GeographicScope.String(),
		Trend:                  risk.Trend.String(),
		InherentLikelihood:     risk.InherentLikelihood.String(),
		InherentImpact:         risk.InherentImpact.String(),
		ResidualLikelihood:     risk.ResidualLikelihood.String(),
		ResidualImpact:         risk.ResidualImpact.String(),
		FinancialImpactMin:     risk.FinancialImpactMin,
		FinancialImpactMax:     risk.FinancialImpactMax,
		RegulatoryRequirements: risk.RegulatoryRequirements,
		ExternalDependencies:   risk.ExternalDependencies,
		AffectedAssets:         risk.AffectedAssets,
		ControlIDs:             risk.ControlIDs,
		IncidentCount:          risk.IncidentCount,
		OwnerID:                risk.OwnerID,
		LastReviewDate:         risk.LastReviewDate,
		CreatedAt:              risk.CreatedAt,
		UpdatedAt:              risk.UpdatedAt,
	}
}

func (d *riskDocument) toModel() *model.Risk {
	return &model.Risk{
		ID:                     d.ID,
		Title:                  d.Title,
		Description:            d.Description,
		Category:               types.RiskCategory(d.Category),
		BusinessUnit:           d.BusinessUnit,
		ProcessArea:            d.ProcessArea,
		GeographicScope:        types.GeographicScope(d.GeographicScope),
		Trend:                  types.RiskTrend(d.Trend),
		InherentLikelihood:     types.Likelihood(d.InherentLikelihood),
		InherentImpact:         types.Impact(d.InherentImpact),
		ResidualLikelihood:     types.Likelihood(d.ResidualLikelihood),
		ResidualImpact:         types.Impact(d.ResidualImpact),
		FinancialImpactMin:     d.FinancialImpactMin,
		FinancialImpactMax:     d.FinancialImpactMax,
		RegulatoryRequirements: d.RegulatoryRequirements,
		ExternalDependencies:   d.ExternalDependencies,
		AffectedAssets:         d.AffectedAssets,
		ControlIDs:             d.ControlIDs,
		IncidentCount:          d.IncidentCount,
		OwnerID:                d.OwnerID,
		LastReviewDate:         d.LastReviewDate,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) risksCollection() string {
	return collectionName(r.collectionPrefix, "risks")
}

func (r *riskRepository) counterCollection() string {
	return collectionName(r.collectionPrefix, "counters")
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	id, err := nextCounterValue(ctx, r.client, r.counterCollection(), "risk_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toRiskDocument(risk)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.risksCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	return doc.toModel(), nil
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	docRef := r.client.Collection(r.risksCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var riskDoc riskDocument
	if err := doc.DataTo(&riskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", id))
	}

	return riskDoc.toModel(), nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	iter := r.client.Collection(r.risksCollection()).Documents(ctx)
	defer iter.Stop()

	var risks []*model.Risk
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var riskDoc riskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk")
		}

		risks = append(risks, riskDoc.toModel())
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	docRef := r.client.Collection(r.risksCollection()).Doc(fmt.Sprintf("%d", risk.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", risk.ID))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", risk.ID))
	}

	var existing riskDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", risk.ID))
	}

	updated := toRiskDocument(risk)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("id", risk.ID))
	}

	return updated.toModel(), nil
}

func (r *riskRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.risksCollection()).Doc(fmt.Sprintf("%d", id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("id", id))
	}

	return nil
}
