package deployments

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the deployment tracker. Writes are serialized so that every id
// moves through its lifecycle at most once.
type Service struct {
	deployments *Repository

	mu sync.Mutex

	logger *zap.Logger
}

func NewService(deployments *Repository, logger *zap.Logger) *Service {
	return &Service{
		deployments: deployments,

		logger: logger,
	}
}

// Record stores a new deployment and assigns its id.
func (s *Service) Record(ctx context.Context, draft DeploymentDraft) (*Deployment, error) {
	if draft.Status == "" {
		draft.Status = StatusPending
	}
	draft.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	deployment, err := s.deployments.Create(ctx, &draft)
	if err != nil {
		s.logger.Error("failed to record deployment", zap.String("platform", draft.Platform), zap.Error(err))
		return nil, err
	}

	s.logger.Info("deployment recorded",
		zap.String("id", deployment.ID.String()),
		zap.String("platform", deployment.Platform),
		zap.String("status", string(deployment.Status)))

	return deployment, nil
}

// Get retrieves a deployment by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Deployment, error) {
	s.logger.Debug("getting deployment", zap.String("id", id.String()))

	deployment, err := s.deployments.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to get deployment", zap.String("id", id.String()), zap.Error(err))
		}
		return nil, err
	}

	return deployment, nil
}

// List returns all tracked deployments in insertion order.
func (s *Service) List(ctx context.Context) ([]Deployment, error) {
	s.logger.Debug("listing deployments")

	deployments, err := s.deployments.List(ctx)
	if err != nil {
		s.logger.Error("failed to list deployments", zap.Error(err))
		return nil, err
	}

	return deployments, nil
}

// ListByPlatform returns the deployments of one platform in insertion order.
func (s *Service) ListByPlatform(ctx context.Context, platform string) ([]Deployment, error) {
	deployments, err := s.deployments.ListByPlatform(ctx, platform)
	if err != nil {
		s.logger.Error("failed to list deployments", zap.String("platform", platform), zap.Error(err))
		return nil, err
	}

	return deployments, nil
}

// Transition applies change to the stored deployment. Changes that move the
// status backwards or touch a terminal deployment fail with ErrNotAllowed.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, change func(*Deployment) error) (*Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.deployments.Update(ctx, id, func(d *Deployment) error {
		from := d.Status
		if from.Terminal() {
			return fmt.Errorf("%w: deployment is already %s", ErrNotAllowed, from)
		}

		if err := change(d); err != nil {
			return err
		}

		if !from.CanTransitionTo(d.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrNotAllowed, from, d.Status)
		}

		d.normalize()
		return nil
	})
	if err != nil {
		s.logger.Warn("transition rejected", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("deployment updated",
		zap.String("id", id.String()),
		zap.String("status", string(updated.Status)))

	return updated, nil
}

// Cancel forces a non-terminal deployment to failed. Cancelling a terminal
// deployment is a no-op that returns it unchanged.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Deployment, error) {
	updated, err := s.Transition(ctx, id, func(d *Deployment) error {
		d.AppendLog(ErrMessageCancelled)
		d.MarkFailed(ErrMessageCancelled)
		return nil
	})
	if errors.Is(err, ErrNotAllowed) {
		return s.Get(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("deployment cancelled", zap.String("id", id.String()))

	return updated, nil
}

// Rollback mints a new deployment that points at the release of the source
// deployment. The source entry is never modified. An unknown id returns
// ErrNotFound and records nothing.
func (s *Service) Rollback(ctx context.Context, id uuid.UUID) (*Deployment, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft := DeploymentDraft{
		Platform:   source.Platform,
		ProjectID:  source.ProjectID,
		RollbackOf: &source.ID,
	}

	if source.Status == StatusDeployed {
		draft.MarkDeployed(source.URL, source.ProviderDeploymentID, 0)
		draft.AppendLog(fmt.Sprintf("Rolled back to deployment %s", source.ID))
	} else {
		draft.MarkFailed(fmt.Sprintf("Deployment %s has no deployed release to roll back to", source.ID))
		draft.AppendLog(draft.Error)
	}

	rollback, err := s.Record(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.logger.Info("deployment rolled back",
		zap.String("source_id", source.ID.String()),
		zap.String("id", rollback.ID.String()),
		zap.String("status", string(rollback.Status)))

	return rollback, nil
}
