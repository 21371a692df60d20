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

type controlAssessmentDocument struct {
	ControlID        int64  `firestore:"control_id"`
	ControlRef       string `firestore:"control_ref"`
	AssessmentMethod string `firestore:"assessment_method"`

	ComplianceStatus         string  `firestore:"compliance_status"`
	EffectivenessRating      string  `firestore:"effectiveness_rating"`
	MaturityLevel            int     `firestore:"maturity_level"`
	ComplianceScore          float64 `firestore:"compliance_score"`
	ImplementationPercentage float64 `firestore:"implementation_percentage"`
	ConfidenceLevel          string  `firestore:"confidence_level"`

	EvidenceQualityScore      float64  `firestore:"evidence_quality_score"`
	DocumentationCompleteness float64  `firestore:"documentation_completeness"`
	Limitations               []string `firestore:"limitations"`

	Findings          []findingDocument `firestore:"findings"`
	Recommendations   []string          `firestore:"recommendations"`
	EvidenceCollected []string          `firestore:"evidence_collected"`
}

type findingDocument struct {
	Type           string `firestore:"type"`
	Severity       string `firestore:"severity"`
	Description    string `firestore:"description"`
	Impact         string `firestore:"impact"`
	Recommendation string `firestore:"recommendation"`
}

type complianceFindingDocument struct {
	ID           string `firestore:"id"`
	AssessmentID int64  `firestore:"assessment_id"`
	ControlRef   string `firestore:"control_ref"`
	findingDocument
	CreatedAt time.Time `firestore:"created_at"`
}

type assessmentDocument struct {
	ID          int64    `firestore:"id"`
	FrameworkID int64    `firestore:"framework_id"`
	Name        string   `firestore:"name"`
	Scope       []string `firestore:"scope"`

	OverallComplianceScore float64                     `firestore:"overall_compliance_score"`
	ControlAssessments     []controlAssessmentDocument `firestore:"control_assessments"`
	Findings               []complianceFindingDocument `firestore:"findings"`
	FindingsBySeverity     map[string]int              `firestore:"findings_by_severity"`

	ConductedBy string    `firestore:"conducted_by"`
	ConductedAt time.Time `firestore:"conducted_at"`
	CreatedAt   time.Time `firestore:"created_at"`
}

func toFindingDocument(f model.Finding) findingDocument {
	return findingDocument{
		Type:           f.Type.String(),
		Severity:       f.Severity.String(),
		Description:    f.Description,
		Impact:         f.Impact,
		Recommendation: f.Recommendation,
	}
}

func (d findingDocument) toModel() model.Finding {
	return model.Finding{
		Type:           types.FindingType(d.Type),
		Severity:       types.FindingSeverity(d.Severity),
		Description:    d.Description,
		Impact:         d.Impact,
		Recommendation: d.Recommendation,
	}
}

func toAssessmentDocument(a *model.Assessment) *assessmentDocument {
	doc := &assessmentDocument{
		ID:                     a.ID,
		FrameworkID:            a.FrameworkID,
		Name:                   a.Name,
		Scope:                  a.Scope,
		OverallComplianceScore: a.OverallComplianceScore,
		FindingsBySeverity:     make(map[string]int, len(a.FindingsBySeverity)),
		ConductedBy:            a.ConductedBy,
		ConductedAt:            a.ConductedAt,
		CreatedAt:              a.CreatedAt,
	}

	for severity, count := range a.FindingsBySeverity {
		doc.FindingsBySeverity[severity.String()] = count
	}

	for _, ca := range a.ControlAssessments {
		caDoc := controlAssessmentDocument{
			ControlID:                 ca.ControlID,
			ControlRef:                ca.ControlRef,
			AssessmentMethod:          ca.AssessmentMethod.String(),
			ComplianceStatus:          ca.ComplianceStatus.String(),
			EffectivenessRating:       ca.EffectivenessRating.String(),
			MaturityLevel:             ca.MaturityLevel,
			ComplianceScore:           ca.ComplianceScore,
			ImplementationPercentage:  ca.ImplementationPercentage,
			ConfidenceLevel:           ca.ConfidenceLevel.String(),
			EvidenceQualityScore:      ca.EvidenceQualityScore,
			DocumentationCompleteness: ca.DocumentationCompleteness,
			Limitations:               ca.Limitations,
			Recommendations:           ca.Recommendations,
		}
		for _, f := range ca.Findings {
			caDoc.Findings = append(caDoc.Findings, toFindingDocument(f))
		}
		for _, e := range ca.EvidenceCollected {
			caDoc.EvidenceCollected = append(caDoc.EvidenceCollected, e.String())
		}
		doc.ControlAssessments = append(doc.ControlAssessments, caDoc)
	}

	for _, f := range a.Findings {
		doc.Findings = append(doc.Findings, complianceFindingDocument{
			ID:              f.ID,
			AssessmentID:    f.AssessmentID,
			ControlRef:      f.ControlRef,
			findingDocument: toFindingDocument(f.Finding),
			CreatedAt:       f.CreatedAt,
		})
	}

	return doc
}

func (d *assessmentDocument) toModel() *model.Assessment {
	a := &model.Assessment{
		ID:                     d.ID,
		FrameworkID:            d.FrameworkID,
		Name:                   d.Name,
		Scope:                  d.Scope,
		OverallComplianceScore: d.OverallComplianceScore,
		FindingsBySeverity:     make(map[types.FindingSeverity]int, len(d.FindingsBySeverity)),
		ConductedBy:            d.ConductedBy,
		ConductedAt:            d.ConductedAt,
		CreatedAt:              d.CreatedAt,
	}

	for severity, count := range d.FindingsBySeverity {
		a.FindingsBySeverity[types.FindingSeverity(severity)] = count
	}

	for _, caDoc := range d.ControlAssessments {
		ca := model.ControlAssessment{
			ControlID:                 caDoc.ControlID,
			ControlRef:                caDoc.ControlRef,
			AssessmentMethod:          types.AssessmentMethod(caDoc.AssessmentMethod),
			ComplianceStatus:          types.ImplementationStatus(caDoc.ComplianceStatus),
			EffectivenessRating:       types.EffectivenessRating(caDoc.EffectivenessRating),
			MaturityLevel:             caDoc.MaturityLevel,
			ComplianceScore:           caDoc.ComplianceScore,
			ImplementationPercentage:  caDoc.ImplementationPercentage,
			ConfidenceLevel:           types.ConfidenceLevel(caDoc.ConfidenceLevel),
			EvidenceQualityScore:      caDoc.EvidenceQualityScore,
			DocumentationCompleteness: caDoc.DocumentationCompleteness,
			Limitations:               caDoc.Limitations,
			Recommendations:           caDoc.Recommendations,
		}
		for _, f := range caDoc.Findings {
			ca.Findings = append(ca.Findings, f.toModel())
		}
		for _, e := range caDoc.EvidenceCollected {
			ca.EvidenceCollected = append(ca.EvidenceCollected, types.EvidenceType(e))
		}
		a.ControlAssessments = append(a.ControlAssessments, ca)
	}

	for _, fDoc := range d.Findings {
		a.Findings = append(a.Findings, model.ComplianceFinding{
			ID:           fDoc.ID,
			AssessmentID: fDoc.AssessmentID,
			ControlRef:   fDoc.ControlRef,
			Finding:      fDoc.findingDocument.toModel(),
			CreatedAt:    fDoc.CreatedAt,
		})
	}

	return a
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{client: client}
}

func (r *assessmentRepository) assessmentsCollection() string {
	return collectionName(r.collectionPrefix, "assessments")
}

func (r *assessmentRepository) counterCollection() string {
	return collectionName(r.collectionPrefix, "counters")
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	id, err := nextCounterValue(ctx, r.client, r.counterCollection(), "assessment_counter")
	if err != nil {
		return nil, err
	}

	doc := toAssessmentDocument(assessment)
	doc.ID = id
	doc.CreatedAt = time.Now().UTC()
	for i := range doc.Findings {
		doc.Findings[i].AssessmentID = id
	}

	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment")
	}

	return doc.toModel(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id int64) (*model.Assessment, error) {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	return assessmentDoc.toModel(), nil
}

func (r *assessmentRepository) ListByFramework(ctx context.Context, frameworkID int64) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("framework_id", "==", frameworkID).
		Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments", goerr.V("frameworkID", frameworkID))
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}

		assessments = append(assessments, assessmentDoc.toModel())
	}

	// Newest first
	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].ConductedAt.After(assessments[j].ConductedAt)
	})

	return assessments, nil
}

func (r *assessmentRepository) Latest(ctx context.Context, frameworkID int64) (*model.Assessment, error) {
	assessments, err := r.ListByFramework(ctx, frameworkID)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "no assessment recorded for framework", goerr.V("frameworkID", frameworkID))
	}
	return assessments[0], nil
}
