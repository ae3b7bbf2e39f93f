package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mayaweb/udeploy/internal/builder"
	"github.com/mayaweb/udeploy/internal/deployments"
	"github.com/mayaweb/udeploy/internal/packager"
	"github.com/mayaweb/udeploy/internal/platforms"
	"github.com/mayaweb/udeploy/internal/providers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Builder interface {
	Build(ctx context.Context, req builder.Request) (*builder.Result, error)
}

type Packager interface {
	Package(ctx context.Context, dir string) (packager.Files, error)
}

// Service runs deployments through build, packaging and provider dispatch
// and keeps the tracker in step with every stage.
type Service struct {
	config Config

	platforms *platforms.Registry
	providers *providers.Registry
	tracker   *deployments.Service
	builder   Builder
	packager  Packager

	validator *validator.Validate
	metrics   *metrics
	logger    *zap.Logger
}

func NewService(
	config Config,
	platforms *platforms.Registry,
	providers *providers.Registry,
	tracker *deployments.Service,
	builder Builder,
	packager Packager,
	validator *validator.Validate,
	registerer prometheus.Registerer,
	logger *zap.Logger,
) *Service {
	return &Service{
		config: config,

		platforms: platforms,
		providers: providers,
		tracker:   tracker,
		builder:   builder,
		packager:  packager,

		validator: validator,
		metrics:   newMetrics(registerer),
		logger:    logger,
	}
}

// Deploy runs one deployment to completion. Expected failures are reported
// through the returned deployment; the error is non-nil only for a malformed
// config.
func (s *Service) Deploy(ctx context.Context, cfg deployments.Config) (*deployments.Deployment, error) {
	if err := s.validator.StructCtx(ctx, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	started := time.Now()
	logger := s.logger.With(zap.String("platform", cfg.Platform), zap.String("project_id", cfg.ProjectID))

	deployment := s.run(ctx, cfg, logger)
	s.metrics.observe(deployment, started)

	logger.Info("deployment finished",
		zap.String("deployment_id", deployment.ID.String()),
		zap.String("status", string(deployment.Status)),
		zap.Duration("elapsed", time.Since(started)))

	return deployment, nil
}

func (s *Service) run(ctx context.Context, cfg deployments.Config, logger *zap.Logger) *deployments.Deployment {
	draft := deployments.DeploymentDraft{
		Platform:  cfg.Platform,
		ProjectID: cfg.ProjectID,
	}

	if !s.supported(cfg.Platform) {
		draft.MarkFailed(fmt.Sprintf("Unsupported platform: %s", cfg.Platform))
		draft.AppendLog(draft.Error)
		return s.record(ctx, draft, logger)
	}

	draft.AppendLog(fmt.Sprintf("Deployment to %s requested", s.displayName(cfg.Platform)))
	deployment := s.record(ctx, draft, logger)
	if deployment.Status.Terminal() {
		return deployment
	}

	deployment, ok := s.advance(ctx, deployment, func(d *deployments.Deployment) {
		d.MarkBuilding()
		d.AppendLog("Building project")
	})
	if !ok {
		return deployment
	}

	result, err := s.builder.Build(ctx, buildRequest(cfg))
	if err != nil {
		logger.Warn("build failed", zap.Error(err))
		deployment, _ = s.advance(ctx, deployment, func(d *deployments.Deployment) {
			d.AppendLog(err.Error())
			d.MarkFailed(err.Error())
		})
		return deployment
	}

	deployment, ok = s.advance(ctx, deployment, func(d *deployments.Deployment) {
		if result.Skipped {
			d.AppendLog("Build skipped")
		} else {
			d.AppendLog(fmt.Sprintf("Build completed in %s", result.Duration.Round(time.Millisecond)))
		}
	})
	if !ok {
		return deployment
	}

	files, err := s.packager.Package(ctx, result.OutputDir)
	if err != nil {
		logger.Warn("packaging failed", zap.Error(err))
		deployment, _ = s.advance(ctx, deployment, func(d *deployments.Deployment) {
			d.AppendLog(err.Error())
			d.MarkFailed(err.Error())
		})
		return deployment
	}

	deployment, ok = s.advance(ctx, deployment, func(d *deployments.Deployment) {
		d.AppendLog(fmt.Sprintf("Packaged %d files (%d bytes)", len(files), files.Size()))
		d.AppendLog(fmt.Sprintf("Uploading to %s", s.displayName(cfg.Platform)))
	})
	if !ok {
		return deployment
	}

	outcome := s.providers.Dispatch(ctx, cfg, files)

	deployment, ok = s.advance(ctx, deployment, func(d *deployments.Deployment) {
		if !outcome.Success() {
			d.AppendLog(outcome.Error)
			d.MarkFailed(outcome.Error)
			return
		}

		d.AppendLog(outcome.Release.Logs...)
		d.AppendLog(fmt.Sprintf("Deployed to %s", outcome.Release.URL))
		d.MarkDeployed(outcome.Release.URL, outcome.Release.ProviderDeploymentID, outcome.Release.EstimatedTime)
	})
	if !ok && outcome.Success() {
		s.abort(ctx, cfg.Platform, outcome.Release.ProviderDeploymentID, logger)
	}

	return deployment
}

// DeployToMultiplePlatforms deploys cfg to every platform concurrently and
// waits for all of them. Duplicate ids are deployed once.
func (s *Service) DeployToMultiplePlatforms(
	ctx context.Context,
	platformIDs []string,
	cfg deployments.Config,
) (map[string]*deployments.Deployment, error) {
	platformIDs = lo.Uniq(platformIDs)

	configs := make([]deployments.Config, 0, len(platformIDs))
	for _, id := range platformIDs {
		target := cfg
		target.Platform = id
		if err := s.validator.StructCtx(ctx, target); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, id, err)
		}
		configs = append(configs, target)
	}

	var (
		mu      sync.Mutex
		results = make(map[string]*deployments.Deployment, len(configs))
	)

	g := new(errgroup.Group)
	if s.config.MaxParallel > 0 {
		g.SetLimit(s.config.MaxParallel)
	}

	for _, target := range configs {
		g.Go(func() error {
			deployment, err := s.Deploy(ctx, target)
			if err != nil {
				deployment = unrecorded(target, err.Error())
			}

			mu.Lock()
			results[target.Platform] = deployment
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	s.logger.Info("fan-out finished",
		zap.Strings("platforms", platformIDs),
		zap.Int("deployed", lo.CountBy(lo.Values(results), func(d *deployments.Deployment) bool { return d.Success() })))

	return results, nil
}

// GetDeploymentStatus returns the tracked deployment or deployments.ErrNotFound.
func (s *Service) GetDeploymentStatus(ctx context.Context, id uuid.UUID) (*deployments.Deployment, error) {
	return s.tracker.Get(ctx, id)
}

func (s *Service) ListDeployments(ctx context.Context) ([]deployments.Deployment, error) {
	return s.tracker.List(ctx)
}

// CancelDeployment marks a deployment cancelled. It reports false only when
// the id is unknown; cancelling a finished deployment leaves it unchanged.
// Work already handed to the provider is not interrupted.
func (s *Service) CancelDeployment(ctx context.Context, id uuid.UUID) bool {
	deployment, err := s.tracker.Cancel(ctx, id)
	if err != nil {
		if !errors.Is(err, deployments.ErrNotFound) {
			s.logger.Error("failed to cancel deployment", zap.String("deployment_id", id.String()), zap.Error(err))
		}
		return false
	}

	s.logger.Info("cancel requested",
		zap.String("deployment_id", id.String()),
		zap.String("status", string(deployment.Status)))

	return true
}

// RollbackDeployment records a new deployment serving the release of id.
func (s *Service) RollbackDeployment(ctx context.Context, id uuid.UUID) (*deployments.Deployment, error) {
	return s.tracker.Rollback(ctx, id)
}

func (s *Service) GetSupportedPlatforms() []platforms.Platform {
	return s.platforms.List()
}

// GetRecommendedPlatforms never returns an empty list.
func (s *Service) GetRecommendedPlatforms(projectType string) []platforms.Platform {
	return s.platforms.Recommend(projectType)
}

func (s *Service) supported(platform string) bool {
	if _, err := s.platforms.Get(platform); err != nil {
		return false
	}

	return s.providers.Has(platform)
}

func (s *Service) displayName(platform string) string {
	if p, err := s.platforms.Get(platform); err == nil {
		return p.Name
	}

	return platform
}

// record stores draft. Storage failures still produce a failed deployment so
// the caller always gets a result.
func (s *Service) record(ctx context.Context, draft deployments.DeploymentDraft, logger *zap.Logger) *deployments.Deployment {
	deployment, err := s.tracker.Record(ctx, draft)
	if err != nil {
		logger.Error("failed to record deployment", zap.Error(err))
		return unrecorded(deployments.Config{Platform: draft.Platform, ProjectID: draft.ProjectID}, err.Error())
	}

	return deployment
}

// advance applies change through the tracker. It returns the stored
// deployment and false when the change was rejected, which is the case once
// the deployment was cancelled.
func (s *Service) advance(
	ctx context.Context,
	current *deployments.Deployment,
	change func(*deployments.Deployment),
) (*deployments.Deployment, bool) {
	updated, err := s.tracker.Transition(ctx, current.ID, func(d *deployments.Deployment) error {
		change(d)
		return nil
	})
	if err == nil {
		return updated, true
	}

	stored, getErr := s.tracker.Get(ctx, current.ID)
	if getErr != nil {
		s.logger.Error("failed to reload deployment", zap.String("deployment_id", current.ID.String()), zap.Error(getErr))
		return current, false
	}

	return stored, false
}

// abort asks the provider to drop a release that finished after the
// deployment was cancelled.
func (s *Service) abort(ctx context.Context, platform, providerDeploymentID string, logger *zap.Logger) {
	supported, err := s.providers.Cancel(ctx, platform, providerDeploymentID)
	switch {
	case err != nil:
		logger.Warn("provider cancel failed", zap.String("provider_deployment_id", providerDeploymentID), zap.Error(err))
	case supported:
		logger.Info("provider deployment cancelled", zap.String("provider_deployment_id", providerDeploymentID))
	}
}

func buildRequest(cfg deployments.Config) builder.Request {
	req := builder.Request{
		OutputDir: cfg.OutputDirectory,
		Env:       cfg.EnvironmentVariables,
	}

	if cfg.BuildCommand != nil {
		req.Command = *cfg.BuildCommand
		req.Skip = *cfg.BuildCommand == ""
	}

	return req
}

func unrecorded(cfg deployments.Config, message string) *deployments.Deployment {
	deployment := &deployments.Deployment{
		DeploymentDraft: deployments.DeploymentDraft{
			Platform:  cfg.Platform,
			ProjectID: cfg.ProjectID,
		},
	}
	deployment.MarkFailed(message)
	deployment.AppendLog(message)

	return deployment
}
