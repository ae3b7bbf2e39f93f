package deployments

import "time"

type RepositoryConfig struct {
	// Retention expires tracker entries after the given age; zero keeps them
	// for the lifetime of the process.
	Retention time.Duration
}
