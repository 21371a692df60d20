package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type frameworkDocument struct {
	ID             int64     `firestore:"id"`
	Name           string    `firestore:"name"`
	Version        string    `firestore:"version"`
	Description    string    `firestore:"description"`
	TargetMaturity int       `firestore:"target_maturity"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

func toFrameworkDocument(framework *model.Framework) *frameworkDocument {
	return &frameworkDocument{
		ID:             framework.ID,
		Name:           framework.Name,
		Version:        framework.Version,
		Description:    framework.Description,
		TargetMaturity: framework.TargetMaturity,
		CreatedAt:      framework.CreatedAt,
		UpdatedAt:      framework.UpdatedAt,
	}
}

func (d *frameworkDocument) toModel() *model.Framework {
	return &model.Framework{
		ID:             d.ID,
		Name:           d.Name,
		Version:        d.Version,
		Description:    d.Description,
		TargetMaturity: d.TargetMaturity,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type frameworkRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFrameworkRepository(client *firestore.Client) *frameworkRepository {
	return &frameworkRepository{client: client}
}

func (r *frameworkRepository) frameworksCollection() string {
	return collectionName(r.collectionPrefix, "frameworks")
}

func (r *frameworkRepository) counterCollection() string {
	return collectionName(r.collectionPrefix, "counters")
}

func (r *frameworkRepository) Create(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	id, err := nextCounterValue(ctx, r.client, r.counterCollection(), "framework_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toFrameworkDocument(framework)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.frameworksCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create framework")
	}

	return doc.toModel(), nil
}

func (r *frameworkRepository) Get(ctx context.Context, id int64) (*model.Framework, error) {
	docRef := r.client.Collection(r.frameworksCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get framework", goerr.V("id", id))
	}

	var frameworkDoc frameworkDocument
	if err := doc.DataTo(&frameworkDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal framework", goerr.V("id", id))
	}

	return frameworkDoc.toModel(), nil
}

func (r *frameworkRepository) List(ctx context.Context) ([]*model.Framework, error) {
	iter := r.client.Collection(r.frameworksCollection()).Documents(ctx)
	defer iter.Stop()

	var frameworks []*model.Framework
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate frameworks")
		}

		var frameworkDoc frameworkDocument
		if err := doc.DataTo(&frameworkDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal framework")
		}

		frameworks = append(frameworks, frameworkDoc.toModel())
	}

	return frameworks, nil
}

func (r *frameworkRepository) Update(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	docRef := r.client.Collection(r.frameworksCollection()).Doc(fmt.Sprintf("%d", framework.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", framework.ID))
		}
		return nil, goerr.Wrap(err, "failed to get framework", goerr.V("id", framework.ID))
	}

	var existing frameworkDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal framework", goerr.V("id", framework.ID))
	}

	updated := toFrameworkDocument(framework)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update framework", goerr.V("id", framework.ID))
	}

	return updated.toModel(), nil
}

func (r *frameworkRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.frameworksCollection()).Doc(fmt.Sprintf("%d", id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get framework", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete framework", goerr.V("id", id))
	}

	return nil
}
