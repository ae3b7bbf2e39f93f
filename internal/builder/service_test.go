package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	workDir := t.TempDir()
	service := NewService(Config{WorkDir: workDir, OutputDir: "dist"}, zaptest.NewLogger(t))

	return service, workDir
}

func TestService_BuildWritesOutput(t *testing.T) {
	service, workDir := newTestService(t)

	result, err := service.Build(context.Background(), Request{
		Command: `mkdir -p dist && printf '%s' "$GREETING" > dist/index.html && echo built`,
		Env:     map[string]string{"GREETING": "hello"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expectedDir := filepath.Join(workDir, "dist")
	if result.OutputDir != expectedDir {
		t.Errorf("expected output dir %s, got %s", expectedDir, result.OutputDir)
	}
	if !strings.Contains(result.Output, "built") {
		t.Errorf("expected captured output, got %q", result.Output)
	}

	content, err := os.ReadFile(filepath.Join(expectedDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "hello" {
		t.Errorf("expected env var to reach the build, got %q", content)
	}
}

func TestService_BuildFailureCarriesOutput(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Build(context.Background(), Request{
		Command: "echo 'module not found: react' >&2; exit 3",
	})
	if !errors.Is(err, ErrBuild) {
		t.Fatalf("expected ErrBuild, got %v", err)
	}
	if !strings.Contains(err.Error(), "module not found: react") {
		t.Errorf("expected process output in error, got %q", err.Error())
	}
}

func TestService_BuildSkip(t *testing.T) {
	service, workDir := newTestService(t)

	result, err := service.Build(context.Background(), Request{
		Command:   "exit 1",
		OutputDir: "public",
		Skip:      true,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !result.Skipped {
		t.Error("expected skipped result")
	}
	if result.OutputDir != filepath.Join(workDir, "public") {
		t.Errorf("unexpected output dir %s", result.OutputDir)
	}
}

func TestService_BuildHonoursContext(t *testing.T) {
	service, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.Build(ctx, Request{Command: "sleep 5"}); !errors.Is(err, ErrBuild) {
		t.Fatalf("expected ErrBuild for cancelled context, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxOutputInError+10)

	got := truncate(long)
	if len(got) != maxOutputInError+3 {
		t.Errorf("expected truncated length %d, got %d", maxOutputInError+3, len(got))
	}
	if truncate("  short \n") != "short" {
		t.Error("expected short output to be trimmed only")
	}
}
