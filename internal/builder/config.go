package builder

import "time"

type Config struct {
	// Command is the build command used when a request does not carry one.
	Command string
	// WorkDir is the project directory the command runs in.
	WorkDir string
	// OutputDir is resolved relative to WorkDir.
	OutputDir string
	// Shell interprets Command (invoked as `<shell> -c <command>`).
	Shell   string
	Timeout time.Duration
}

func DefaultConfig() Config {
	//nolint:mnd //default values
	return Config{
		Command:   "npm run build",
		WorkDir:   ".",
		OutputDir: "dist",
		Shell:     "sh",
		Timeout:   10 * time.Minute,
	}
}
