package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/mayaweb/udeploy/internal/deployments"
	"github.com/mayaweb/udeploy/internal/packager"
	"github.com/mayaweb/udeploy/internal/platforms"
	"go.uber.org/zap"
)

// Outcome is the result of a dispatch. Err is nil on success; otherwise
// Error carries the user-facing "<Provider>: <class>: <cause>" message.
type Outcome struct {
	Release *Release
	Err     error
	Error   string
}

func (o Outcome) Success() bool {
	return o.Err == nil
}

// Registry dispatches deployments to adapters by platform id.
type Registry struct {
	adapters  map[string]Adapter
	platforms *platforms.Registry
	config    Config

	logger *zap.Logger
}

// NewRegistry builds a registry over the given adapters.
func NewRegistry(config Config, catalog *platforms.Registry, logger *zap.Logger, adapters ...Adapter) *Registry {
	defaults := DefaultConfig()
	if config.DeployTimeout <= 0 {
		config.DeployTimeout = defaults.DeployTimeout
	}

	byID := make(map[string]Adapter, len(adapters))
	for _, adapter := range adapters {
		byID[adapter.Platform()] = adapter
	}

	return &Registry{
		adapters:  byID,
		platforms: catalog,
		config:    config,

		logger: logger,
	}
}

// New builds a registry with an adapter for every catalog platform.
func New(deps Deps) *Registry {
	if deps.Credentials == nil {
		deps.Credentials = EnvCredentials{}
	}
	if deps.Config.HTTPTimeout <= 0 {
		deps.Config.HTTPTimeout = DefaultConfig().HTTPTimeout
	}

	client := newAPIClient(&http.Client{Timeout: deps.Config.HTTPTimeout})

	adapters := make([]Adapter, 0, len(builtins))
	for _, platform := range deps.Platforms.List() {
		factory, ok := builtins[platform.ID]
		if !ok {
			deps.Logger.Warn("no adapter for platform", zap.String("platform", platform.ID))
			continue
		}
		adapters = append(adapters, factory(newBase(platform, deps, client), deps))
	}

	return NewRegistry(deps.Config, deps.Platforms, deps.Logger, adapters...)
}

// Has reports whether an adapter is registered for the platform.
func (r *Registry) Has(platform string) bool {
	_, ok := r.adapters[platform]
	return ok
}

// Slug returns the remote project name used for a project id.
func (r *Registry) Slug(projectID string) string {
	return Slug(r.config.ProjectPrefix, projectID)
}

// Dispatch invokes the adapter for cfg.Platform. Errors and panics are
// converted into a failed outcome and never escape.
func (r *Registry) Dispatch(ctx context.Context, cfg deployments.Config, files packager.Files) (outcome Outcome) {
	name := r.displayName(cfg.Platform)
	logger := r.logger.With(zap.String("platform", cfg.Platform), zap.String("project_id", cfg.ProjectID))

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("adapter panicked", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
			outcome = r.failed(name, fmt.Errorf("%w: adapter panicked: %v", ErrProvider, rec))
		}
	}()

	adapter, ok := r.adapters[cfg.Platform]
	if !ok {
		return r.failed(name, fmt.Errorf("%w: no adapter registered for platform %q", ErrConfiguration, cfg.Platform))
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.DeployTimeout)
	defer cancel()

	logger.Info("dispatching deployment", zap.Int("files", len(files)))

	release, err := adapter.Deploy(ctx, Request{
		Config: cfg,
		Files:  files,
		Slug:   r.Slug(cfg.ProjectID),
	})
	if err == nil && release == nil {
		err = fmt.Errorf("%w: adapter returned no release", ErrProvider)
	}
	if err == nil {
		err = checkURL(release.URL)
	}
	if err != nil {
		logger.Error("deployment failed", zap.Error(err))
		return r.failed(name, err)
	}

	logger.Info("deployment published",
		zap.String("url", release.URL),
		zap.String("provider_deployment_id", release.ProviderDeploymentID))

	return Outcome{Release: release}
}

// Cancel asks the provider to abort a deployment. It reports false when the
// adapter has no abort support.
func (r *Registry) Cancel(ctx context.Context, platform, providerDeploymentID string) (bool, error) {
	canceler, ok := r.adapters[platform].(Canceler)
	if !ok || providerDeploymentID == "" {
		return false, nil
	}

	if err := canceler.Cancel(ctx, providerDeploymentID); err != nil {
		return true, fmt.Errorf("%s: %w", r.displayName(platform), err)
	}

	return true, nil
}

func (r *Registry) failed(name string, err error) Outcome {
	class := ErrProvider
	if errors.Is(err, ErrConfiguration) {
		class = ErrConfiguration
	} else if !errors.Is(err, ErrProvider) {
		err = fmt.Errorf("%w: %w", ErrProvider, err)
	}

	cause := strings.TrimPrefix(err.Error(), class.Error()+": ")

	return Outcome{
		Err:   err,
		Error: fmt.Sprintf("%s: %s: %s", name, class, cause),
	}
}

func (r *Registry) displayName(id string) string {
	if r.platforms != nil {
		if platform, err := r.platforms.Get(id); err == nil {
			return platform.Name
		}
	}

	return id
}
