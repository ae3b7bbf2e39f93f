package providers

import "time"

type Config struct {
	// Endpoints overrides API base URLs by platform id.
	Endpoints map[string]string
	// HTTPTimeout bounds a single provider API request.
	HTTPTimeout time.Duration
	// DeployTimeout bounds a whole adapter invocation.
	DeployTimeout time.Duration
	// ProjectPrefix is prepended to project ids to name remote projects.
	ProjectPrefix string
}

func DefaultConfig() Config {
	return Config{
		Endpoints:     map[string]string{},
		HTTPTimeout:   2 * time.Minute,
		DeployTimeout: 10 * time.Minute,
		ProjectPrefix: "maya-web",
	}
}
