package builder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// maxOutputInError bounds how much build output is folded into an error.
const maxOutputInError = 4096

type Service struct {
	config Config

	// builds share one working directory and output dir, so they run one at a time
	mu sync.Mutex

	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	defaults := DefaultConfig()
	config.Command = lo.Ternary(config.Command == "", defaults.Command, config.Command)
	config.WorkDir = lo.Ternary(config.WorkDir == "", defaults.WorkDir, config.WorkDir)
	config.OutputDir = lo.Ternary(config.OutputDir == "", defaults.OutputDir, config.OutputDir)
	config.Shell = lo.Ternary(config.Shell == "", defaults.Shell, config.Shell)

	return &Service{
		config: config,
		logger: logger,
	}
}

// Build runs the build command synchronously and returns the output directory.
func (s *Service) Build(ctx context.Context, req Request) (*Result, error) {
	command := lo.Ternary(req.Command == "", s.config.Command, req.Command)
	outputDir := lo.Ternary(req.OutputDir == "", s.config.OutputDir, req.OutputDir)
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(s.config.WorkDir, outputDir)
	}

	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid output directory %q: %w", ErrBuild, outputDir, err)
	}

	if req.Skip {
		s.logger.Info("build skipped", zap.String("output_dir", absOutput))
		return &Result{OutputDir: absOutput, Skipped: true}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	s.logger.Info("running build",
		zap.String("command", command),
		zap.String("work_dir", s.config.WorkDir))

	cmd := exec.CommandContext(ctx, s.config.Shell, "-c", command)
	cmd.Dir = s.config.WorkDir
	cmd.Env = append(os.Environ(), envList(req.Env)...)

	started := time.Now()
	out, err := cmd.CombinedOutput()
	duration := time.Since(started)
	output := string(out)

	if err != nil {
		s.logger.Error("build failed",
			zap.String("command", command),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %q: %w; output: %s", ErrBuild, command, err, truncate(output))
	}

	s.logger.Info("build completed",
		zap.String("output_dir", absOutput),
		zap.Duration("duration", duration))

	return &Result{
		OutputDir: absOutput,
		Output:    output,
		Duration:  duration,
	}, nil
}

func envList(env map[string]string) []string {
	keys := lo.Keys(env)
	slices.Sort(keys)

	return lo.Map(keys, func(k string, _ int) string { return k + "=" + env[k] })
}

func truncate(output string) string {
	output = strings.TrimSpace(output)
	if len(output) <= maxOutputInError {
		return output
	}

	return "..." + output[len(output)-maxOutputInError:]
}
