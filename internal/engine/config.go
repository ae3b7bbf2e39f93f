package engine

type Config struct {
	// MaxParallel bounds concurrent deployments in a fan-out; zero is unlimited.
	MaxParallel int
}
