package config

import (
	"github.com/go-core-fx/fiberfx"
	"github.com/mayaweb/udeploy/internal/builder"
	"github.com/mayaweb/udeploy/internal/deployments"
	"github.com/mayaweb/udeploy/internal/engine"
	"github.com/mayaweb/udeploy/internal/git"
	"github.com/mayaweb/udeploy/internal/providers"
	"github.com/mayaweb/udeploy/pkg/badgerfx"
	"github.com/mayaweb/udeploy/pkg/openapifx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) openapifx.Config {
			return openapifx.Config{
				Enabled:    cfg.HTTP.OpenAPI.Enabled,
				PublicHost: cfg.HTTP.OpenAPI.PublicHost,
				PublicPath: cfg.HTTP.OpenAPI.PublicPath,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir:      cfg.Storage.DataDir,
				InMemory: cfg.Storage.InMemory,
			}
		}),
		fx.Provide(func(cfg Config) builder.Config {
			return builder.Config{
				Command:   cfg.Build.Command,
				WorkDir:   cfg.Build.WorkDir,
				OutputDir: cfg.Build.OutputDir,
				Shell:     cfg.Build.Shell,
				Timeout:   cfg.Build.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) deployments.RepositoryConfig {
			return deployments.RepositoryConfig{
				Retention: cfg.Tracker.Retention,
			}
		}),
		fx.Provide(func(cfg Config) providers.Config {
			return providers.Config{
				Endpoints:     cfg.Providers.Endpoints,
				HTTPTimeout:   cfg.Providers.HTTPTimeout,
				DeployTimeout: cfg.Deploy.AdapterTimeout,
				ProjectPrefix: cfg.Deploy.ProjectPrefix,
			}
		}),
		fx.Provide(func(cfg Config) engine.Config {
			return engine.Config{
				MaxParallel: cfg.Deploy.MaxParallel,
			}
		}),
		fx.Provide(func(cfg Config) git.Config {
			return git.Config{
				Timeout:     cfg.Git.Timeout,
				AuthorName:  cfg.Git.AuthorName,
				AuthorEmail: cfg.Git.AuthorEmail,
			}
		}),
	)
}
