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

type controlDocument struct {
	ID          int64 `firestore:"id"`
	FrameworkID int64 `firestore:"framework_id"`

	ControlID     string `firestore:"control_id"`
	ControlFamily string `firestore:"control_family"`
	Title         string `firestore:"title"`
	Description   string `firestore:"description"`

	ControlType          string `firestore:"control_type"`
	ImplementationStatus string `firestore:"implementation_status"`
	Priority             string `firestore:"priority"`

	AutomatedTesting   bool   `firestore:"automated_testing"`
	AutomationTool     string `firestore:"automation_tool"`
	TestingMethodology string `firestore:"testing_methodology"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toControlDocument(control *model.Control) *controlDocument {
	return &controlDocument{
		ID:                   control.ID,
		FrameworkID:          control.FrameworkID,
		ControlID:            control.ControlID,
		ControlFamily:        control.ControlFamily,
		Title:                control.Title,
		Description:          control.Description,
		ControlType:          control.ControlType.String(),
		ImplementationStatus: control.ImplementationStatus.String(),
		Priority:             control.Priority.String(),
		AutomatedTesting:     control.AutomatedTesting,
		AutomationTool:       control.AutomationTool,
		TestingMethodology:   control.TestingMethodology,
		CreatedAt:            control.CreatedAt,
		UpdatedAt:            control.UpdatedAt,
	}
}

func (d *controlDocument) toModel() *model.Control {
	return &model.Control{
		ID:                   d.ID,
		FrameworkID:          d.FrameworkID,
		ControlID:            d.ControlID,
		ControlFamily:        d.ControlFamily,
		Title:                d.Title,
		Description:          d.Description,
		ControlType:          types.ControlType(d.ControlType),
		ImplementationStatus: types.ImplementationStatus(d.ImplementationStatus),
		Priority:             types.Priority(d.Priority),
		AutomatedTesting:     d.AutomatedTesting,
		AutomationTool:       d.AutomationTool,
		TestingMethodology:   d.TestingMethodology,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

type evidenceDocument struct {
	ID             int64     `firestore:"id"`
	ControlID      int64     `firestore:"control_id"`
	EvidenceType   string    `firestore:"evidence_type"`
	Description    string    `firestore:"description"`
	Reference      string    `firestore:"reference"`
	Validated      bool      `firestore:"validated"`
	CollectionDate time.Time `firestore:"collection_date"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func (d *evidenceDocument) toModel() *model.Evidence {
	return &model.Evidence{
		ID:             d.ID,
		ControlID:      d.ControlID,
		EvidenceType:   types.EvidenceType(d.EvidenceType),
		Description:    d.Description,
		Reference:      d.Reference,
		Validated:      d.Validated,
		CollectionDate: d.CollectionDate,
		CreatedAt:      d.CreatedAt,
	}
}

type controlRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newControlRepository(client *firestore.Client) *controlRepository {
	return &controlRepository{client: client}
}

func (r *controlRepository) controlsCollection() string {
	return collectionName(r.collectionPrefix, "controls")
}

func (r *controlRepository) evidenceCollection() string {
	return collectionName(r.collectionPrefix, "evidence")
}

func (r *controlRepository) counterCollection() string {
	return collectionName(r.collectionPrefix, "counters")
}

func (r *controlRepository) Create(ctx context.Context, control *model.Control) (*model.Control, error) {
	id, err := nextCounterValue(ctx, r.client, r.counterCollection(), "control_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toControlDocument(control)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.controlsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create control")
	}

	return doc.toModel(), nil
}

func (r *controlRepository) Get(ctx context.Context, id int64) (*model.Control, error) {
	docRef := r.client.Collection(r.controlsCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get control", goerr.V("id", id))
	}

	var controlDoc controlDocument
	if err := doc.DataTo(&controlDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal control", goerr.V("id", id))
	}

	return controlDoc.toModel(), nil
}

func (r *controlRepository) ListByFramework(ctx context.Context, frameworkID int64) ([]*model.Control, error) {
	iter := r.client.Collection(r.controlsCollection()).
		Where("framework_id", "==", frameworkID).
		Documents(ctx)
	defer iter.Stop()

	var controls []*model.Control
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate controls", goerr.V("frameworkID", frameworkID))
		}

		var controlDoc controlDocument
		if err := doc.DataTo(&controlDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal control")
		}

		controls = append(controls, controlDoc.toModel())
	}

	sort.Slice(controls, func(i, j int) bool {
		return controls[i].ControlID < controls[j].ControlID
	})

	return controls, nil
}

func (r *controlRepository) Update(ctx context.Context, control *model.Control) (*model.Control, error) {
	docRef := r.client.Collection(r.controlsCollection()).Doc(fmt.Sprintf("%d", control.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", control.ID))
		}
		return nil, goerr.Wrap(err, "failed to get control", goerr.V("id", control.ID))
	}

	var existing controlDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal control", goerr.V("id", control.ID))
	}

	updated := toControlDocument(control)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update control", goerr.V("id", control.ID))
	}

	return updated.toModel(), nil
}

func (r *controlRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.controlsCollection()).Doc(fmt.Sprintf("%d", id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get control", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete control", goerr.V("id", id))
	}

	return nil
}

func (r *controlRepository) AddEvidence(ctx context.Context, evidence *model.Evidence) (*model.Evidence, error) {
	if _, err := r.Get(ctx, evidence.ControlID); err != nil {
		return nil, err
	}

	id, err := nextCounterValue(ctx, r.client, r.counterCollection(), "evidence_counter")
	if err != nil {
		return nil, err
	}

	doc := &evidenceDocument{
		ID:             id,
		ControlID:      evidence.ControlID,
		EvidenceType:   evidence.EvidenceType.String(),
		Description:    evidence.Description,
		Reference:      evidence.Reference,
		Validated:      evidence.Validated,
		CollectionDate: evidence.CollectionDate,
		CreatedAt:      time.Now().UTC(),
	}

	docRef := r.client.Collection(r.evidenceCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to store evidence", goerr.V("controlID", evidence.ControlID))
	}

	return doc.toModel(), nil
}

func (r *controlRepository) ListEvidence(ctx context.Context, controlID int64) ([]*model.Evidence, error) {
	iter := r.client.Collection(r.evidenceCollection()).
		Where("control_id", "==", controlID).
		Documents(ctx)
	defer iter.Stop()

	var evidence []*model.Evidence
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate evidence", goerr.V("controlID", controlID))
		}

		var evidenceDoc evidenceDocument
		if err := doc.DataTo(&evidenceDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal evidence")
		}

		evidence = append(evidence, evidenceDoc.toModel())
	}

	return evidence, nil
}
