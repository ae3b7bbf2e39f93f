package builder

import "time"

// Request describes one build invocation. Empty fields fall back to Config.
type Request struct {
	Command   string
	OutputDir string
	Env       map[string]string

	// Skip bypasses the command for projects whose output is already built.
	Skip bool
}

type Result struct {
	OutputDir string // absolute path of the build output
	Output    string // combined stdout and stderr
	Duration  time.Duration
	Skipped   bool
}
