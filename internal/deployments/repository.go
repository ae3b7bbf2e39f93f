package deployments

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mayaweb/udeploy/internal/storage"
)

type Repository struct {
	db      *badger.DB
	storage *storage.Repository[*deploymentModel]
}

func NewRepository(db *badger.DB, config RepositoryConfig) *Repository {
	return &Repository{
		db: db,
		storage: storage.NewRepository(
			func() *deploymentModel { return new(deploymentModel) },
			config.Retention,
		),
	}
}

// Create stores a new deployment.
func (r *Repository) Create(_ context.Context, draft *DeploymentDraft) (*Deployment, error) {
	model := newDeploymentModel(draft)

	if err := r.db.Update(func(txn *badger.Txn) error {
		return r.storage.Write(txn, model)
	}); err != nil {
		return nil, fmt.Errorf("failed to create deployment: %w", err)
	}

	return newDeployment(model), nil
}

// GetByID retrieves a deployment by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Deployment, error) {
	var deployment *Deployment

	err := r.db.View(func(txn *badger.Txn) error {
		model, err := r.getByID(txn, id)
		if err != nil {
			return err
		}

		deployment = newDeployment(model)
		return nil
	})

	return deployment, err
}

// Update applies updater to a copy of the stored deployment and writes it back.
func (r *Repository) Update(_ context.Context, id uuid.UUID, updater func(*Deployment) error) (*Deployment, error) {
	var updated *Deployment

	err := r.db.Update(func(txn *badger.Txn) error {
		old, err := r.getByID(txn, id)
		if err != nil {
			return err
		}

		deployment := newDeployment(old)
		if updErr := updater(deployment); updErr != nil {
			return updErr
		}

		if deployment.Platform != old.Platform {
			return fmt.Errorf("%w: cannot change platform (old=%s new=%s)", ErrNotAllowed, old.Platform, deployment.Platform)
		}

		model := newDeploymentUpdateModel(old, &deployment.DeploymentDraft)
		if writeErr := r.storage.Write(txn, model); writeErr != nil {
			return writeErr
		}

		updated = newDeployment(model)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update deployment: %w", err)
	}

	return updated, nil
}

// List returns every deployment in insertion order.
func (r *Repository) List(_ context.Context) ([]Deployment, error) {
	var deployments []Deployment

	err := r.db.View(func(txn *badger.Txn) error {
		models, err := r.storage.List(txn, prefixByID)
		if err != nil {
			return err
		}

		deployments = make([]Deployment, 0, len(models))
		for _, model := range models {
			deployments = append(deployments, *newDeployment(model))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	return deployments, nil
}

// ListByPlatform returns the deployments of one platform in insertion order.
func (r *Repository) ListByPlatform(_ context.Context, platform string) ([]Deployment, error) {
	var deployments []Deployment

	err := r.db.View(func(txn *badger.Txn) error {
		models, err := r.storage.ListByIndex(txn, prefixByPlatform+platform+":")
		if err != nil {
			return err
		}

		deployments = make([]Deployment, 0, len(models))
		for _, model := range models {
			deployments = append(deployments, *newDeployment(model))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	return deployments, nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*deploymentModel, error) {
	model, err := r.storage.Read(txn, deploymentKey(id))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deployment: %w", err)
	}

	return model, nil
}
